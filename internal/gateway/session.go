// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"fmt"
	"io"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/relaycord/internal/cache"
)

// =============================================================================
// SESSION
// =============================================================================

// Session owns the gateway connection. The wrapped discordgo session keeps
// its entity state current from the event stream; the core reads that state
// only through the cache view.
type Session struct {
	dg  *discordgo.Session
	log *logrus.Entry
}

// Connect authenticates with the given token, opens the gateway socket, and
// returns the live session.
func Connect(token string, log *logrus.Entry) (*Session, error) {
	dg, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	dg.StateEnabled = true
	dg.State.TrackChannels = true
	dg.State.TrackMembers = true
	dg.State.TrackRoles = true
	dg.State.TrackPresences = true

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("opening gateway: %w", err)
	}
	log.Info("gateway connected")

	return &Session{dg: dg, log: log}, nil
}

// Close shuts the gateway socket down. In-flight worker tasks are not
// awaited here; the task runner owns that.
func (s *Session) Close() error {
	s.log.Info("gateway disconnecting")
	return s.dg.Close()
}

// View returns the read-only entity cache facade over the session state.
func (s *Session) View() cache.View {
	return cache.NewStateView(s.dg.State)
}

// =============================================================================
// MESSAGE API
// =============================================================================

// Messages fetches up to limit of the most recent messages, newest first.
func (s *Session) Messages(channelID string, limit int) ([]Message, error) {
	raw, err := s.dg.ChannelMessages(channelID, limit, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}

	msgs := make([]Message, 0, len(raw))
	for _, m := range raw {
		msg := Message{ID: m.ID, ChannelID: m.ChannelID, Content: m.Content}
		if m.Author != nil {
			msg.AuthorID = m.Author.ID
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// SendMessage sends plain text to a channel.
func (s *Session) SendMessage(channelID, content string) error {
	if _, err := s.dg.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// EditMessage replaces the content of an own message.
func (s *Session) EditMessage(channelID, messageID, content string) error {
	if _, err := s.dg.ChannelMessageEdit(channelID, messageID, content); err != nil {
		return fmt.Errorf("editing message: %w", err)
	}
	return nil
}

// DeleteMessage deletes an own message.
func (s *Session) DeleteMessage(channelID, messageID string) error {
	if err := s.dg.ChannelMessageDelete(channelID, messageID); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	return nil
}

// SendFile uploads a file to a channel.
func (s *Session) SendFile(channelID, name string, r io.Reader) error {
	if _, err := s.dg.ChannelFileSend(channelID, name, r); err != nil {
		return fmt.Errorf("uploading file: %w", err)
	}
	return nil
}

// =============================================================================
// DIRECTORY API
// =============================================================================

// CreateDM opens (or finds) a DM channel with a user.
func (s *Session) CreateDM(userID string) (string, error) {
	ch, err := s.dg.UserChannelCreate(userID)
	if err != nil {
		return "", fmt.Errorf("creating DM channel: %w", err)
	}
	return ch.ID, nil
}

// SetNickname changes the current user's nickname in a guild.
func (s *Session) SetNickname(guildID, nick string) error {
	if err := s.dg.GuildMemberNickname(guildID, "@me", nick); err != nil {
		return fmt.Errorf("setting nickname: %w", err)
	}
	return nil
}

// =============================================================================
// PRESENCE API
// =============================================================================

// UpdatePresence sets the current status and optional activity.
func (s *Session) UpdatePresence(status discordgo.Status, activity *discordgo.Activity) error {
	data := discordgo.UpdateStatusData{Status: string(status)}
	if activity != nil {
		data.Activities = []*discordgo.Activity{activity}
	}
	if err := s.dg.UpdateStatusComplex(data); err != nil {
		return fmt.Errorf("updating presence: %w", err)
	}
	return nil
}

// Typing broadcasts a typing indicator in a channel.
func (s *Session) Typing(channelID string) error {
	if err := s.dg.ChannelTyping(channelID); err != nil {
		return fmt.Errorf("sending typing event: %w", err)
	}
	return nil
}
