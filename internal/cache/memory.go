// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// =============================================================================
// MEMORY VIEW
// =============================================================================

// MemoryView is a self-contained View backed by plain maps. It serves tests
// and the disconnected state, where no gateway state exists yet.
type MemoryView struct {
	mu sync.RWMutex

	currentUser    UserRecord
	hasCurrentUser bool

	guilds        map[string]GuildRecord
	guildChannels map[string][]ChannelRecord
	guildMembers  map[string][]MemberRecord
	guildRoles    map[string][]RoleRecord
	private       []ChannelRecord
	users         map[string]UserRecord
	presences     map[string]discordgo.Status
}

// NewMemoryView returns an empty in-memory view.
func NewMemoryView() *MemoryView {
	return &MemoryView{
		guilds:        make(map[string]GuildRecord),
		guildChannels: make(map[string][]ChannelRecord),
		guildMembers:  make(map[string][]MemberRecord),
		guildRoles:    make(map[string][]RoleRecord),
		users:         make(map[string]UserRecord),
		presences:     make(map[string]discordgo.Status),
	}
}

// =============================================================================
// POPULATION
// =============================================================================

// SetCurrentUser sets the logged-in user.
func (v *MemoryView) SetCurrentUser(u UserRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.currentUser = u
	v.hasCurrentUser = true
	v.users[u.ID] = u
}

// AddGuild adds a guild.
func (v *MemoryView) AddGuild(g GuildRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.guilds[g.ID] = g
}

// AddChannel adds a channel. Guild-less channels are treated as private.
func (v *MemoryView) AddChannel(ch ChannelRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ch.GuildID == "" {
		v.private = append(v.private, ch)
		return
	}
	v.guildChannels[ch.GuildID] = append(v.guildChannels[ch.GuildID], ch)
}

// AddMember adds a guild member and registers its user.
func (v *MemoryView) AddMember(m MemberRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.guildMembers[m.GuildID] = append(v.guildMembers[m.GuildID], m)
	v.users[m.User.ID] = m.User
}

// AddRole adds a guild role.
func (v *MemoryView) AddRole(guildID string, r RoleRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.guildRoles[guildID] = append(v.guildRoles[guildID], r)
}

// AddUser adds a user outside any guild.
func (v *MemoryView) AddUser(u UserRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.users[u.ID] = u
}

// SetPresence records a user's online status.
func (v *MemoryView) SetPresence(userID string, status discordgo.Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.presences[userID] = status
}

// =============================================================================
// VIEW IMPLEMENTATION
// =============================================================================

// CurrentUser returns the logged-in user, if set.
func (v *MemoryView) CurrentUser() (UserRecord, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.currentUser, v.hasCurrentUser
}

// Guilds returns every guild, ordered ascending by ID.
func (v *MemoryView) Guilds() []GuildRecord {
	v.mu.RLock()
	guilds := make([]GuildRecord, 0, len(v.guilds))
	for _, g := range v.guilds {
		guilds = append(guilds, g)
	}
	v.mu.RUnlock()

	sortGuilds(guilds)
	return guilds
}

// Guild returns one guild by ID.
func (v *MemoryView) Guild(id string) (GuildRecord, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	g, ok := v.guilds[id]
	return g, ok
}

// GuildChannels returns the channels of a guild, ordered ascending by ID.
func (v *MemoryView) GuildChannels(guildID string) []ChannelRecord {
	v.mu.RLock()
	channels := append([]ChannelRecord(nil), v.guildChannels[guildID]...)
	v.mu.RUnlock()

	sortChannels(channels)
	return channels
}

// GuildMembers returns the members of a guild, ordered ascending by user ID.
func (v *MemoryView) GuildMembers(guildID string) []MemberRecord {
	v.mu.RLock()
	members := append([]MemberRecord(nil), v.guildMembers[guildID]...)
	v.mu.RUnlock()

	sortMembers(members)
	return members
}

// GuildRoles returns the roles of a guild, ordered ascending by ID.
func (v *MemoryView) GuildRoles(guildID string) []RoleRecord {
	v.mu.RLock()
	roles := append([]RoleRecord(nil), v.guildRoles[guildID]...)
	v.mu.RUnlock()

	sortRoles(roles)
	return roles
}

// Channel returns one channel by ID.
func (v *MemoryView) Channel(id string) (ChannelRecord, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, chans := range v.guildChannels {
		for _, ch := range chans {
			if ch.ID == id {
				return ch, true
			}
		}
	}
	for _, ch := range v.private {
		if ch.ID == id {
			return ch, true
		}
	}
	return ChannelRecord{}, false
}

// Channels returns every channel, ordered ascending by ID.
func (v *MemoryView) Channels() []ChannelRecord {
	v.mu.RLock()
	var channels []ChannelRecord
	for _, chans := range v.guildChannels {
		channels = append(channels, chans...)
	}
	channels = append(channels, v.private...)
	v.mu.RUnlock()

	sortChannels(channels)
	return channels
}

// PrivateChannels returns the private channels, ordered ascending by ID.
func (v *MemoryView) PrivateChannels() []ChannelRecord {
	v.mu.RLock()
	channels := append([]ChannelRecord(nil), v.private...)
	v.mu.RUnlock()

	sortChannels(channels)
	return channels
}

// Users returns every known user, ordered ascending by ID.
func (v *MemoryView) Users() []UserRecord {
	v.mu.RLock()
	users := make([]UserRecord, 0, len(v.users))
	for _, u := range v.users {
		users = append(users, u)
	}
	v.mu.RUnlock()

	sortUsers(users)
	return users
}

// Presence returns a user's online status, if recorded.
func (v *MemoryView) Presence(userID string) (discordgo.Status, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s, ok := v.presences[userID]
	return s, ok
}
