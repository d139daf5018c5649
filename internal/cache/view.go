// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

// =============================================================================
// RECORDS
// =============================================================================

// Records are small copies extracted from the shared state under its read
// lock. Ownership is the caller's; mutating a record never touches the cache.

// GuildRecord is a copied guild summary.
type GuildRecord struct {
	ID   string
	Name string
}

// ChannelRecord is a copied channel summary. RecipientID is the first
// recipient's user ID for private channels, empty for guild channels.
type ChannelRecord struct {
	ID            string
	GuildID       string
	Name          string
	Kind          ChannelKind
	Position      int
	LastMessageID string
	RecipientID   string
}

// UserRecord is a copied user summary.
type UserRecord struct {
	ID            string
	Username      string
	Discriminator string
	Bot           bool
}

// MemberRecord is a copied guild member summary.
type MemberRecord struct {
	GuildID string
	Nick    string
	User    UserRecord
}

// RoleRecord is a copied role summary.
type RoleRecord struct {
	ID   string
	Name string
}

// =============================================================================
// VIEW INTERFACE
// =============================================================================

// View is the read-only entity cache facade the core resolves against.
//
// All slice-returning methods order their results ascending by snowflake ID,
// so "first match wins" policies built on a View are deterministic even
// though the underlying state has no stable iteration order.
type View interface {
	// CurrentUser returns the logged-in user, if known.
	CurrentUser() (UserRecord, bool)

	// Guilds returns every cached guild.
	Guilds() []GuildRecord

	// Guild returns one guild by ID.
	Guild(id string) (GuildRecord, bool)

	// GuildChannels returns every channel of a guild.
	GuildChannels(guildID string) []ChannelRecord

	// GuildMembers returns every cached member of a guild.
	GuildMembers(guildID string) []MemberRecord

	// GuildRoles returns every role of a guild.
	GuildRoles(guildID string) []RoleRecord

	// Channel returns one channel by ID, searching guild and private channels.
	Channel(id string) (ChannelRecord, bool)

	// Channels returns every cached channel, guild and private alike.
	Channels() []ChannelRecord

	// PrivateChannels returns the cached DM and group-DM channels.
	PrivateChannels() []ChannelRecord

	// Users returns every cached user.
	Users() []UserRecord

	// Presence returns the online status of a user, if cached.
	Presence(userID string) (discordgo.Status, bool)
}

// =============================================================================
// ORDERING
// =============================================================================

// lessID orders decimal snowflake strings numerically.
func lessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func sortGuilds(gs []GuildRecord) {
	sort.Slice(gs, func(i, j int) bool { return lessID(gs[i].ID, gs[j].ID) })
}

func sortChannels(cs []ChannelRecord) {
	sort.Slice(cs, func(i, j int) bool { return lessID(cs[i].ID, cs[j].ID) })
}

func sortMembers(ms []MemberRecord) {
	sort.Slice(ms, func(i, j int) bool { return lessID(ms[i].User.ID, ms[j].User.ID) })
}

func sortUsers(us []UserRecord) {
	sort.Slice(us, func(i, j int) bool { return lessID(us[i].ID, us[j].ID) })
}

func sortRoles(rs []RoleRecord) {
	sort.Slice(rs, func(i, j int) bool { return lessID(rs[i].ID, rs[j].ID) })
}
