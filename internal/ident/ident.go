// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ident encodes and decodes guild/channel identifier tokens.
package ident

import (
	"strings"
)

// =============================================================================
// GUILD OR CHANNEL
// =============================================================================

// GuildOrChannel is a resolved watch/autojoin target: either a whole guild or
// a single channel (which may or may not belong to a guild).
//
// It is an immutable value type. Instances are produced by Decode or by the
// resolver and are only ever replaced, never mutated.
type GuildOrChannel struct {
	// GuildID is the guild snowflake. Empty for a guild-less channel entry.
	GuildID string

	// ChannelID is the channel snowflake. Empty for a guild entry.
	ChannelID string
}

// Guild returns a target referring to a whole guild.
func Guild(guildID string) GuildOrChannel {
	return GuildOrChannel{GuildID: guildID}
}

// Channel returns a target referring to a single channel. guildID may be
// empty for private (DM) channels.
func Channel(guildID, channelID string) GuildOrChannel {
	return GuildOrChannel{GuildID: guildID, ChannelID: channelID}
}

// IsGuild reports whether the target refers to a whole guild.
func (g GuildOrChannel) IsGuild() bool {
	return g.ChannelID == ""
}

// EqualsGuildID reports whether this target is the given guild. A channel
// target never equals a guild ID, even if it belongs to that guild.
func (g GuildOrChannel) EqualsGuildID(id string) bool {
	return g.IsGuild() && g.GuildID == id
}

// EqualsChannelID reports whether this target is the given channel. A guild
// target never equals a channel ID.
func (g GuildOrChannel) EqualsChannelID(id string) bool {
	return !g.IsGuild() && g.ChannelID == id
}

// =============================================================================
// TOKEN CODEC
// =============================================================================

// The token grammar is persisted-state format and must remain stable:
//
//	"G" <digits> ["C" <digits>]  guild, or channel within a guild
//	"C" <digits>                 guild-less (private) channel

// EncodeChannel returns the token for a channel, optionally scoped to a
// guild. An empty guildID produces the guild-less "C…" form.
func EncodeChannel(guildID, channelID string) string {
	if guildID != "" {
		return "G" + guildID + "C" + channelID
	}
	return "C" + channelID
}

// EncodeGuild returns the token for a whole guild.
func EncodeGuild(guildID string) string {
	return "G" + guildID
}

// Encode returns the token for a resolved target.
func Encode(target GuildOrChannel) string {
	if target.IsGuild() {
		return EncodeGuild(target.GuildID)
	}
	return EncodeChannel(target.GuildID, target.ChannelID)
}

// Decode parses an identifier token. It is total for any token produced by
// the encoders and returns ok=false for anything else. Malformed tokens in
// user-editable lists are expected; callers iterating a list skip them.
func Decode(token string) (GuildOrChannel, bool) {
	if token == "" {
		return GuildOrChannel{}, false
	}

	cIdx := strings.IndexByte(token, 'C')
	switch {
	case cIdx == 0:
		// Guild-less channel: "C<digits>"
		channelID := token[1:]
		if !allDigits(channelID) {
			return GuildOrChannel{}, false
		}
		return Channel("", channelID), true

	case cIdx > 0:
		// Guild-scoped channel: "G<digits>C<digits>"
		if token[0] != 'G' {
			return GuildOrChannel{}, false
		}
		guildID := token[1:cIdx]
		channelID := token[cIdx+1:]
		if !allDigits(guildID) || !allDigits(channelID) {
			return GuildOrChannel{}, false
		}
		return Channel(guildID, channelID), true

	default:
		// Bare guild: "G<digits>"
		if token[0] != 'G' {
			return GuildOrChannel{}, false
		}
		guildID := token[1:]
		if !allDigits(guildID) {
			return GuildOrChannel{}, false
		}
		return Guild(guildID), true
	}
}

// allDigits reports whether s is a non-empty run of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
