// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import (
	"sort"

	"github.com/jeranaias/relaycord/internal/cache"
	"github.com/jeranaias/relaycord/internal/ident"
)

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver performs fuzzy name/ID lookup of guilds, channels, and users
// against the entity cache view.
//
// Matching policy: a query matches an entity when the normalized name (see
// cache.NormalizeName) equals the normalized query, or the raw decimal ID
// equals the query verbatim. The first match in view order wins; views order
// entities ascending by ID, so ties between identically-named entities break
// deterministically toward the older entity.
type Resolver struct {
	view cache.View
}

// New creates a resolver over the given view.
func New(view cache.View) *Resolver {
	return &Resolver{view: view}
}

// View returns the underlying cache view.
func (r *Resolver) View() cache.View {
	return r.view
}

// =============================================================================
// GUILD AND CHANNEL SEARCH
// =============================================================================

// SearchGuild finds a guild by name or decimal ID.
func (r *Resolver) SearchGuild(nameOrID string) (cache.GuildRecord, bool) {
	want := cache.NormalizeName(nameOrID)
	for _, g := range r.view.Guilds() {
		if cache.NormalizeName(g.Name) == want || g.ID == nameOrID {
			return g, true
		}
	}
	return cache.GuildRecord{}, false
}

// SearchChannel finds a channel by guild name and channel name (or IDs).
// Only channels whose kind supports message history are considered; voice
// and category channels are skipped.
func (r *Resolver) SearchChannel(guildName, channelName string) (cache.GuildRecord, cache.ChannelRecord, bool) {
	guild, ok := r.SearchGuild(guildName)
	if !ok {
		return cache.GuildRecord{}, cache.ChannelRecord{}, false
	}

	want := cache.NormalizeName(channelName)
	for _, ch := range r.view.GuildChannels(guild.ID) {
		if !ch.Kind.SupportsHistory() {
			continue
		}
		if cache.NormalizeName(ch.Name) == want || ch.ID == channelName {
			return guild, ch, true
		}
	}
	return cache.GuildRecord{}, cache.ChannelRecord{}, false
}

// =============================================================================
// FLATTENING
// =============================================================================

// FlatTargets is an ordered mapping from guild ID (empty for guild-less
// channels) to channel IDs. Insertion order of guild keys is preserved.
type FlatTargets struct {
	keys     []string
	channels map[string][]string
}

// Keys returns the guild keys in insertion order. The empty string key
// groups guild-less channels.
func (f *FlatTargets) Keys() []string {
	return f.keys
}

// Channels returns the channel IDs under a guild key, in insertion order.
func (f *FlatTargets) Channels(guildID string) []string {
	return f.channels[guildID]
}

// Len returns the number of guild keys.
func (f *FlatTargets) Len() int {
	return len(f.keys)
}

func (f *FlatTargets) add(guildID, channelID string) {
	if _, ok := f.channels[guildID]; !ok {
		f.keys = append(f.keys, guildID)
	}
	f.channels[guildID] = append(f.channels[guildID], channelID)
}

// Flatten materializes a list of targets into concrete channels. A guild
// target expands to all of its channels ordered by declared position; a
// channel target contributes itself. Targets that no longer resolve against
// the cache contribute nothing; partial results are fine.
func (r *Resolver) Flatten(targets []ident.GuildOrChannel) *FlatTargets {
	flat := &FlatTargets{channels: make(map[string][]string)}

	for _, target := range targets {
		if target.IsGuild() {
			if _, ok := r.view.Guild(target.GuildID); !ok {
				continue
			}
			for _, ch := range channelsByPosition(r.view.GuildChannels(target.GuildID)) {
				flat.add(target.GuildID, ch.ID)
			}
			continue
		}
		flat.add(target.GuildID, target.ChannelID)
	}

	return flat
}

// channelsByPosition reorders channels by their declared position, ascending.
// The input is already ID-ordered, which stands in as the tie-break.
func channelsByPosition(channels []cache.ChannelRecord) []cache.ChannelRecord {
	out := append([]cache.ChannelRecord(nil), channels...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
