// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"strings"
	"time"

	"github.com/jeranaias/relaycord/internal/gateway"
	"github.com/jeranaias/relaycord/internal/lineedit"
	"github.com/jeranaias/relaycord/internal/mention"
)

// =============================================================================
// BUFFER INPUT
// =============================================================================

// HandleInput processes a line typed into a channel buffer: line-edit
// intents act on the sender's own recent messages, everything else goes out
// as a message after mention substitution.
//
// Session APIs are captured here, before any task is spawned: a disconnect
// racing a queued task must degrade to a failed call, never a nil call.
func HandleInput(ctx *Context, target Target, text string) {
	if target.ChannelID == "" || !ctx.Session.Connected() {
		return
	}
	msgs := ctx.Session.Messages()
	if msgs == nil {
		return
	}

	if intent, ok := lineedit.Parse(text); ok {
		applyLineEdit(ctx, msgs, target, intent)
		return
	}

	outgoing := text
	if view := ctx.Session.View(); view != nil {
		outgoing = mention.Substitute(view, target.GuildID, text)
	}
	channelID := target.ChannelID
	ctx.spawn("send message", func(tctx context.Context) error {
		if err := msgs.SendMessage(channelID, outgoing); err != nil {
			ctx.Print("Unable to send message to %s: %s", channelID, err)
			return err
		}
		return nil
	})
}

// applyLineEdit resolves the target message and performs the delete or edit
// on a worker task.
func applyLineEdit(ctx *Context, msgs gateway.MessageAPI, target Target, intent lineedit.Intent) {
	channelID := target.ChannelID
	selfID := ctx.Session.SelfID()

	switch it := intent.(type) {
	case lineedit.Delete:
		ctx.spawn("delete message", func(tctx context.Context) error {
			msg, err := lineedit.NthOwnMessage(msgs, channelID, selfID, it.N)
			if err != nil {
				ctx.Print("An error occurred deleting a message: %s", err)
				return err
			}
			if err := msgs.DeleteMessage(channelID, msg.ID); err != nil {
				ctx.Print("An error occurred deleting a message: %s", err)
				return err
			}
			ctx.Print("Message (%d) deleted", it.N)
			return nil
		})

	case lineedit.Substitute:
		ctx.spawn("edit message", func(tctx context.Context) error {
			msg, err := lineedit.NthOwnMessage(msgs, channelID, selfID, it.N)
			if err != nil {
				ctx.Print("An error occurred editing a message: %s", err)
				return err
			}
			if err := msgs.EditMessage(channelID, msg.ID, it.Apply(msg.Content)); err != nil {
				ctx.Print("An error occurred editing a message: %s", err)
				return err
			}
			ctx.Print("%ds/%s/%s/%s", it.N, it.Old, it.New, it.Flags)
			return nil
		})
	}
}

// =============================================================================
// TYPING NOTIFICATIONS
// =============================================================================

// NotifyTyping broadcasts a typing indicator for the channel being typed in,
// rate-limited by the session throttle. Command input never triggers one.
func NotifyTyping(ctx *Context, target Target, input string) {
	if !ctx.Config.SendTypingEvents() {
		return
	}
	if strings.HasPrefix(input, "/") {
		return
	}
	if target.ChannelID == "" || !ctx.Session.Connected() {
		return
	}
	api := ctx.Session.Presence()
	if api == nil {
		return
	}
	if !ctx.Typing.Allow() {
		return
	}

	channelID := target.ChannelID
	ctx.spawn("typing", func(tctx context.Context) error {
		return api.Typing(channelID)
	})
}

// =============================================================================
// NICKNAME CHANGES
// =============================================================================

// HandleNick changes the current user's nickname in the buffer's guild, or
// with -all in every cached guild. An empty nick clears it. Guild edits run
// on one worker with a pause between guilds to stay under rate limits.
func HandleNick(ctx *Context, target Target, rest string) {
	if target.GuildID == "" || !ctx.Session.Connected() {
		return
	}
	dir := ctx.Session.Directory()
	if dir == nil {
		return
	}

	nick := strings.TrimSpace(rest)
	all := false
	if nick == "-all" || strings.HasPrefix(nick, "-all ") {
		all = true
		nick = strings.TrimSpace(strings.TrimPrefix(nick, "-all"))
	}

	var guildIDs []string
	if all {
		view := ctx.Session.View()
		if view == nil {
			return
		}
		for _, guild := range view.Guilds() {
			guildIDs = append(guildIDs, guild.ID)
		}
	} else {
		guildIDs = []string{target.GuildID}
	}

	ctx.spawn("change nickname", func(tctx context.Context) error {
		for i, guildID := range guildIDs {
			if i > 0 {
				select {
				case <-tctx.Done():
					return tctx.Err()
				case <-time.After(time.Second):
				}
			}
			if err := dir.SetNickname(guildID, nick); err != nil {
				ctx.Print("Unable to set nickname in %s: %s", guildID, err)
			}
		}
		return nil
	})
}
