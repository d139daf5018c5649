// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"github.com/bwmarrin/discordgo"
)

// =============================================================================
// CHANNEL KIND
// =============================================================================

// ChannelKind is the closed set of channel kinds the core distinguishes.
// Anything the service adds later maps to KindOther; there is no "impossible"
// sentinel to trap on.
type ChannelKind int

const (
	// KindText is a guild text channel.
	KindText ChannelKind = iota

	// KindDM is a private (direct message) channel.
	KindDM

	// KindVoice is a guild voice channel.
	KindVoice

	// KindGroupDM is a multi-recipient private channel.
	KindGroupDM

	// KindCategory is a channel-grouping category.
	KindCategory

	// KindNews is a guild announcement channel.
	KindNews

	// KindOther covers every kind the core has no special handling for.
	KindOther
)

// String returns a short name for the kind.
func (k ChannelKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDM:
		return "dm"
	case KindVoice:
		return "voice"
	case KindGroupDM:
		return "group"
	case KindCategory:
		return "category"
	case KindNews:
		return "news"
	default:
		return "other"
	}
}

// SupportsHistory reports whether messages can be fetched from channels of
// this kind. Voice and category channels have no message history.
func (k ChannelKind) SupportsHistory() bool {
	switch k {
	case KindText, KindDM, KindGroupDM, KindNews:
		return true
	default:
		return false
	}
}

// KindOf maps a discordgo channel type onto the closed kind set.
func KindOf(t discordgo.ChannelType) ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return KindText
	case discordgo.ChannelTypeDM:
		return KindDM
	case discordgo.ChannelTypeGuildVoice:
		return KindVoice
	case discordgo.ChannelTypeGroupDM:
		return KindGroupDM
	case discordgo.ChannelTypeGuildCategory:
		return KindCategory
	case discordgo.ChannelTypeGuildNews:
		return KindNews
	default:
		return KindOther
	}
}
