// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mention

import (
	"regexp"
	"strings"

	"github.com/jeranaias/relaycord/internal/cache"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	// channelPattern matches the human-typed "#name" shorthand. Channel
	// names on the wire are lowercase with underscores and hyphens.
	channelPattern = regexp.MustCompile(`#([a-z_-]+)`)

	// userPattern matches the "@Name#1234" shorthand: up to 32 name
	// characters and a 2-4 digit discriminator.
	userPattern = regexp.MustCompile(`@(.{0,32}?)#(\d{2,4})`)
)

// =============================================================================
// SUBSTITUTION
// =============================================================================

// Substitute rewrites the "#channel" and "@User#disc" shorthands in outgoing
// text into the service's canonical mention syntax ("<#id>", "<@id>").
//
// Each distinct candidate resolves independently; candidates that resolve
// replace every occurrence of their exact matched substring, and candidates
// that do not stay as literal text. Partial matches are never invented, and
// roles are never mentioned (a known gap carried over from the source
// behavior, not an accident).
//
// guildID scopes channel candidates and orders user resolution; it may be
// empty when the text is sent from a guild-less (DM) buffer.
func Substitute(view cache.View, guildID, input string) string {
	out := input
	out = substituteChannels(view, guildID, input, out)
	out = substituteUsers(view, guildID, input, out)
	return out
}

// substituteChannels resolves "#name" candidates against the contextual
// guild's channels, or every cached channel when there is no guild context.
func substituteChannels(view cache.View, guildID, input, out string) string {
	for _, m := range channelPattern.FindAllStringSubmatch(input, -1) {
		matched, name := m[0], m[1]

		var channels []cache.ChannelRecord
		if guildID != "" {
			channels = view.GuildChannels(guildID)
		} else {
			channels = view.Channels()
		}

		for _, ch := range channels {
			if cache.NormalizeName(ch.Name) == name {
				out = strings.ReplaceAll(out, matched, "<#"+ch.ID+">")
				break
			}
		}
	}
	return out
}

// substituteUsers resolves "@Name#disc" candidates. Resolution order: guild
// member nicknames, then guild member display names, then globally cached
// users; the first structural match wins.
func substituteUsers(view cache.View, guildID, input, out string) string {
	for _, m := range userPattern.FindAllStringSubmatch(input, -1) {
		matched, name := m[0], m[1]

		if id, ok := matchUser(view, guildID, name); ok {
			out = strings.ReplaceAll(out, matched, "<@"+id+">")
		}
	}
	return out
}

func matchUser(view cache.View, guildID, name string) (string, bool) {
	if guildID != "" {
		members := view.GuildMembers(guildID)
		for _, member := range members {
			if member.Nick != "" && member.Nick == name {
				return member.User.ID, true
			}
		}
		for _, member := range members {
			if member.User.Username == name {
				return member.User.ID, true
			}
		}
	}
	for _, user := range view.Users() {
		if user.Username == name {
			return user.ID, true
		}
	}
	return "", false
}
