// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"github.com/bwmarrin/discordgo"
)

// =============================================================================
// STATE VIEW
// =============================================================================

// StateView adapts a gateway-owned discordgo.State to the View interface.
//
// The state is shared with the gateway event loop, which mutates it as events
// arrive. Every method takes the state's read lock, copies what it needs, and
// releases the lock before returning. Two calls may therefore observe
// different snapshots; the core offers no atomicity across lookups.
type StateView struct {
	state *discordgo.State
}

// NewStateView wraps the given state. The state remains owned by the gateway;
// the view never mutates it.
func NewStateView(state *discordgo.State) *StateView {
	return &StateView{state: state}
}

// CurrentUser returns the logged-in user.
func (v *StateView) CurrentUser() (UserRecord, bool) {
	v.state.RLock()
	defer v.state.RUnlock()

	if v.state.User == nil {
		return UserRecord{}, false
	}
	return copyUser(v.state.User), true
}

// Guilds returns every cached guild, ordered ascending by ID.
func (v *StateView) Guilds() []GuildRecord {
	v.state.RLock()
	guilds := make([]GuildRecord, 0, len(v.state.Guilds))
	for _, g := range v.state.Guilds {
		guilds = append(guilds, GuildRecord{ID: g.ID, Name: g.Name})
	}
	v.state.RUnlock()

	sortGuilds(guilds)
	return guilds
}

// Guild returns one guild by ID.
func (v *StateView) Guild(id string) (GuildRecord, bool) {
	v.state.RLock()
	defer v.state.RUnlock()

	for _, g := range v.state.Guilds {
		if g.ID == id {
			return GuildRecord{ID: g.ID, Name: g.Name}, true
		}
	}
	return GuildRecord{}, false
}

// GuildChannels returns every channel of a guild, ordered ascending by ID.
func (v *StateView) GuildChannels(guildID string) []ChannelRecord {
	v.state.RLock()
	var channels []ChannelRecord
	for _, g := range v.state.Guilds {
		if g.ID != guildID {
			continue
		}
		channels = make([]ChannelRecord, 0, len(g.Channels))
		for _, ch := range g.Channels {
			channels = append(channels, copyChannel(ch))
		}
		break
	}
	v.state.RUnlock()

	sortChannels(channels)
	return channels
}

// GuildMembers returns every cached member of a guild, ordered ascending by
// user ID.
func (v *StateView) GuildMembers(guildID string) []MemberRecord {
	v.state.RLock()
	var members []MemberRecord
	for _, g := range v.state.Guilds {
		if g.ID != guildID {
			continue
		}
		members = make([]MemberRecord, 0, len(g.Members))
		for _, m := range g.Members {
			if m.User == nil {
				continue
			}
			members = append(members, MemberRecord{
				GuildID: guildID,
				Nick:    m.Nick,
				User:    copyUser(m.User),
			})
		}
		break
	}
	v.state.RUnlock()

	sortMembers(members)
	return members
}

// GuildRoles returns every role of a guild, ordered ascending by ID.
func (v *StateView) GuildRoles(guildID string) []RoleRecord {
	v.state.RLock()
	var roles []RoleRecord
	for _, g := range v.state.Guilds {
		if g.ID != guildID {
			continue
		}
		roles = make([]RoleRecord, 0, len(g.Roles))
		for _, r := range g.Roles {
			roles = append(roles, RoleRecord{ID: r.ID, Name: r.Name})
		}
		break
	}
	v.state.RUnlock()

	sortRoles(roles)
	return roles
}

// Channel returns one channel by ID, searching guild and private channels.
func (v *StateView) Channel(id string) (ChannelRecord, bool) {
	v.state.RLock()
	defer v.state.RUnlock()

	for _, g := range v.state.Guilds {
		for _, ch := range g.Channels {
			if ch.ID == id {
				return copyChannel(ch), true
			}
		}
	}
	for _, ch := range v.state.PrivateChannels {
		if ch.ID == id {
			return copyChannel(ch), true
		}
	}
	return ChannelRecord{}, false
}

// Channels returns every cached channel, ordered ascending by ID.
func (v *StateView) Channels() []ChannelRecord {
	v.state.RLock()
	var channels []ChannelRecord
	for _, g := range v.state.Guilds {
		for _, ch := range g.Channels {
			channels = append(channels, copyChannel(ch))
		}
	}
	for _, ch := range v.state.PrivateChannels {
		channels = append(channels, copyChannel(ch))
	}
	v.state.RUnlock()

	sortChannels(channels)
	return channels
}

// PrivateChannels returns the cached DM and group-DM channels, ordered
// ascending by ID.
func (v *StateView) PrivateChannels() []ChannelRecord {
	v.state.RLock()
	channels := make([]ChannelRecord, 0, len(v.state.PrivateChannels))
	for _, ch := range v.state.PrivateChannels {
		channels = append(channels, copyChannel(ch))
	}
	v.state.RUnlock()

	sortChannels(channels)
	return channels
}

// Users returns every cached user, ordered ascending by ID.
//
// The gateway state has no single user table, so this aggregates DM
// recipients and guild members, deduplicated by ID.
func (v *StateView) Users() []UserRecord {
	v.state.RLock()
	seen := make(map[string]bool)
	var users []UserRecord
	for _, ch := range v.state.PrivateChannels {
		for _, u := range ch.Recipients {
			if u == nil || seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			users = append(users, copyUser(u))
		}
	}
	for _, g := range v.state.Guilds {
		for _, m := range g.Members {
			if m.User == nil || seen[m.User.ID] {
				continue
			}
			seen[m.User.ID] = true
			users = append(users, copyUser(m.User))
		}
	}
	v.state.RUnlock()

	sortUsers(users)
	return users
}

// Presence returns the online status of a user from the first guild presence
// that mentions them.
func (v *StateView) Presence(userID string) (discordgo.Status, bool) {
	v.state.RLock()
	defer v.state.RUnlock()

	for _, g := range v.state.Guilds {
		for _, p := range g.Presences {
			if p.User != nil && p.User.ID == userID {
				return p.Status, true
			}
		}
	}
	return "", false
}

// =============================================================================
// COPY HELPERS
// =============================================================================

func copyUser(u *discordgo.User) UserRecord {
	return UserRecord{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Bot:           u.Bot,
	}
}

// copyChannel extracts a channel record. Private channels carry no name of
// their own, so the first recipient's username stands in.
func copyChannel(ch *discordgo.Channel) ChannelRecord {
	rec := ChannelRecord{
		ID:            ch.ID,
		GuildID:       ch.GuildID,
		Name:          ch.Name,
		Kind:          KindOf(ch.Type),
		Position:      ch.Position,
		LastMessageID: ch.LastMessageID,
	}
	if len(ch.Recipients) > 0 && ch.Recipients[0] != nil {
		rec.RecipientID = ch.Recipients[0].ID
		if rec.Name == "" {
			rec.Name = ch.Recipients[0].Username
		}
	}
	return rec
}
