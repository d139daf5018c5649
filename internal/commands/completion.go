// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/relaycord/internal/cache"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer generates argument suggestions from the entity cache. Every
// suggestion is passed through the argument-stripping normalization so the
// completed text survives the single-space tokenizer.
type Completer struct {
	session Session
}

// NewCompleter creates a completer over the given session.
func NewCompleter(session Session) *Completer {
	return &Completer{session: session}
}

// view returns the session's cache view, or nil when there is no live
// connection to complete against.
func (c *Completer) view() cache.View {
	if !c.session.Connected() {
		return nil
	}
	return c.session.View()
}

// Guilds returns every cached guild name, argument-stripped.
func (c *Completer) Guilds() []string {
	view := c.view()
	if view == nil {
		return nil
	}

	var names []string
	for _, guild := range view.Guilds() {
		names = append(names, cache.ArgStrip(guild.Name))
	}
	return names
}

// Channels returns the text channels of the guild named by the
// second-to-last token of the input line. Completing the channel argument of
// "join <guild> <chan...>" needs the already-typed guild name, which is the
// previous token.
func (c *Completer) Channels(input string) []string {
	view := c.view()
	if view == nil {
		return nil
	}

	parts := strings.Split(input, " ")
	if len(parts) < 2 {
		return nil
	}
	guildArg := strings.ToLower(parts[len(parts)-2])

	for _, guild := range view.Guilds() {
		if strings.ToLower(cache.ArgStrip(guild.Name)) != guildArg {
			continue
		}
		var names []string
		for _, channel := range view.GuildChannels(guild.ID) {
			if !channel.Kind.SupportsHistory() {
				continue
			}
			names = append(names, cache.ArgStrip(channel.Name))
		}
		return names
	}
	return nil
}

// DMUsers returns the recipients of cached DM channels.
func (c *Completer) DMUsers() []string {
	view := c.view()
	if view == nil {
		return nil
	}

	var names []string
	for _, dm := range view.PrivateChannels() {
		if dm.Kind == cache.KindDM && dm.Name != "" {
			names = append(names, dm.Name)
		}
	}
	return names
}

// Nicks returns "@Name#1234" mention candidates for the members of the
// buffer's guild, sorted.
func (c *Completer) Nicks(target Target) []string {
	if target.GuildID == "" {
		return nil
	}
	view := c.view()
	if view == nil {
		return nil
	}

	var names []string
	for _, member := range view.GuildMembers(target.GuildID) {
		names = append(names, fmt.Sprintf("@%s#%s", member.User.Username, member.User.Discriminator))
	}
	sort.Strings(names)
	return names
}

// Roles returns "@role" candidates for the buffer's guild.
func (c *Completer) Roles(target Target) []string {
	if target.GuildID == "" {
		return nil
	}
	view := c.view()
	if view == nil {
		return nil
	}

	var names []string
	for _, role := range view.GuildRoles(target.GuildID) {
		names = append(names, "@"+role.Name)
	}
	return names
}
