// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"io"

	"github.com/bwmarrin/discordgo"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Message is the minimal message shape the core works with.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
}

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// MessageAPI is the outbound surface for message operations. Every method may
// perform a network call with unbounded latency; callers run them on worker
// tasks, never on the host loop.
type MessageAPI interface {
	// Messages fetches up to limit of the most recent messages in a
	// channel, newest first.
	Messages(channelID string, limit int) ([]Message, error)

	// SendMessage sends plain text to a channel.
	SendMessage(channelID, content string) error

	// EditMessage replaces the content of an own message.
	EditMessage(channelID, messageID, content string) error

	// DeleteMessage deletes an own message.
	DeleteMessage(channelID, messageID string) error

	// SendFile uploads a file to a channel.
	SendFile(channelID, name string, r io.Reader) error
}

// DirectoryAPI covers the user-directory operations.
type DirectoryAPI interface {
	// CreateDM opens (or finds) a DM channel with a user and returns its
	// channel ID.
	CreateDM(userID string) (string, error)

	// SetNickname changes the current user's nickname in a guild. An empty
	// nick clears it.
	SetNickname(guildID, nick string) error
}

// PresenceAPI covers presence updates and typing notifications.
type PresenceAPI interface {
	// UpdatePresence sets the current status and optional activity. A nil
	// activity clears any previous one.
	UpdatePresence(status discordgo.Status, activity *discordgo.Activity) error

	// Typing broadcasts a typing indicator in a channel.
	Typing(channelID string) error
}
