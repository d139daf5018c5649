// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/relaycord/internal/cache"
	"github.com/jeranaias/relaycord/internal/ident"
	"github.com/jeranaias/relaycord/internal/lists"
	"github.com/jeranaias/relaycord/internal/presence"
	"github.com/jeranaias/relaycord/internal/resolve"
)

// =============================================================================
// CONNECTION COMMANDS
// =============================================================================

func handleConnect(ctx *Context, target Target, args Args) {
	token := ctx.Config.Token()
	if token == "" {
		ctx.Print("Error: token unset. Run:")
		ctx.Print("/discord token 123456789ABCDEF")
		return
	}
	if ctx.Session.Connected() {
		ctx.Print("Already connected")
		return
	}

	ctx.spawn("connect", func(tctx context.Context) error {
		if err := ctx.Session.Connect(token); err != nil {
			ctx.Print("Error connecting: %s", err)
			return err
		}
		ctx.Print("Connected")
		return nil
	})
}

func handleDisconnect(ctx *Context, target Target, args Args) {
	if !ctx.Session.Connected() {
		ctx.Print("Already disconnected")
		return
	}
	if err := ctx.Session.Disconnect(); err != nil {
		ctx.Print("Error disconnecting: %s", err)
		return
	}
	ctx.Print("Disconnected")
}

// =============================================================================
// OPTION COMMANDS
// =============================================================================

func handleIRCMode(ctx *Context, target Target, args Args) {
	if ctx.Config.IRCMode() {
		ctx.Print("irc-mode already enabled")
		return
	}
	ctx.Print("%s", FormatChange(ctx.Config.Set("irc_mode", "true")))
	ctx.Print("irc-mode enabled")
}

func handleDiscordMode(ctx *Context, target Target, args Args) {
	if !ctx.Config.IRCMode() {
		ctx.Print("discord-mode already enabled")
		return
	}
	ctx.Print("%s", FormatChange(ctx.Config.Set("irc_mode", "false")))
	ctx.Print("discord-mode enabled")
}

func handleToken(ctx *Context, target Target, args Args) {
	if len(args.NonEmpty()) == 0 {
		ctx.Print("token requires an argument")
		return
	}
	value := strings.Trim(args.Rest, `"`)
	ctx.Print("%s", FormatChange(ctx.Config.Set("token", value)))
	ctx.Print("Set Discord token")
}

func handleAutostart(ctx *Context, target Target, args Args) {
	ctx.Config.Set("autostart", "true")
	ctx.Print("Discord will now load on startup")
}

func handleNoAutostart(ctx *Context, target Target, args Args) {
	ctx.Config.Set("autostart", "false")
	ctx.Print("Discord will not load on startup")
}

// =============================================================================
// DIRECTORY COMMANDS
// =============================================================================

// handleQuery opens a DM with the first user whose name contains the given
// substring. Existing DM recipients are searched before guild members, so a
// name shared between both always reaches the established conversation.
func handleQuery(ctx *Context, target Target, args Args) {
	if args.Rest == "" {
		ctx.Print("query requires a username")
		return
	}
	if !ctx.Session.Connected() {
		return
	}
	view := ctx.Session.View()
	dir := ctx.Session.Directory()
	if view == nil || dir == nil {
		return
	}

	substr := strings.ToLower(args.Rest)
	ctx.spawn("query "+args.Rest, func(tctx context.Context) error {
		openDM := func(userID, name string) error {
			if _, err := dir.CreateDM(userID); err != nil {
				ctx.Print("Could not open DM with %s: %s", name, err)
				return err
			}
			ctx.Print("Opened DM with %s", name)
			return nil
		}

		for _, dm := range view.PrivateChannels() {
			if dm.Kind != cache.KindDM || dm.RecipientID == "" {
				continue
			}
			if strings.Contains(strings.ToLower(dm.Name), substr) {
				return openDM(dm.RecipientID, dm.Name)
			}
		}

		seen := make(map[string]bool)
		for _, guild := range view.Guilds() {
			for _, member := range view.GuildMembers(guild.ID) {
				if seen[member.User.ID] {
					continue
				}
				seen[member.User.ID] = true
				if strings.Contains(strings.ToLower(member.User.Username), substr) {
					return openDM(member.User.ID, member.User.Username)
				}
			}
		}

		ctx.Print("Could not find user %q", args.Rest)
		return nil
	})
}

func handleJoin(ctx *Context, target Target, args Args) {
	items := args.NonEmpty()
	if len(items) == 0 {
		ctx.Print("join requires a guild name and channel name")
		return
	}
	if !ctx.Session.Connected() {
		return
	}

	view := ctx.Session.View()
	if view == nil {
		return
	}

	guildName := items[0]
	resolver := resolve.New(view)

	if len(items) > 1 {
		guild, channel, ok := resolver.SearchChannel(guildName, items[1])
		if !ok {
			ctx.Print("Couldn't find channel")
			return
		}
		ctx.Print("Joined %s #%s", guild.Name, channel.Name)
		return
	}

	guild, ok := resolver.SearchGuild(guildName)
	if !ok {
		ctx.Print("Couldn't find channel")
		return
	}
	flat := resolver.Flatten([]ident.GuildOrChannel{ident.Guild(guild.ID)})
	for _, channelID := range flat.Channels(guild.ID) {
		if channel, found := view.Channel(channelID); found {
			ctx.Print("Joined %s #%s", guild.Name, channel.Name)
		}
	}
}

// =============================================================================
// LIST COMMANDS
// =============================================================================

// resolveListTarget turns "<guild> [channel]" arguments into one identifier
// token, reporting resolution misses itself.
func resolveListTarget(ctx *Context, view cache.View, items []string) (token, guildName, channelName string, ok bool) {
	guildName = items[0]
	if len(items) > 1 {
		channelName = items[1]
	}

	resolver := resolve.New(view)
	if channelName != "" {
		guild, channel, found := resolver.SearchChannel(guildName, channelName)
		if !found {
			ctx.Print("Unable to find server and channel")
			return "", "", "", false
		}
		return ident.EncodeChannel(guild.ID, channel.ID), guildName, channelName, true
	}

	guild, found := resolver.SearchGuild(guildName)
	if !found {
		ctx.Print("Unable to find server")
		return "", "", "", false
	}
	return ident.EncodeGuild(guild.ID), guildName, "", true
}

func handleWatch(ctx *Context, target Target, args Args) {
	items := args.NonEmpty()
	if len(items) == 0 {
		ctx.Print("watch requires a guild name and channel name")
		return
	}
	if !ctx.Session.Connected() {
		return
	}
	view := ctx.Session.View()
	if view == nil {
		return
	}

	token, guildName, channelName, ok := resolveListTarget(ctx, view, items)
	if !ok {
		return
	}

	updated := lists.Add(ctx.Config.WatchedChannels(), token)
	ctx.Config.Set("watched_channels", updated)

	if channelName != "" {
		ctx.Print("Now watching %s in %s", guildName, channelName)
	} else {
		ctx.Print("Now watching all of %s", guildName)
	}
}

func handleAutojoin(ctx *Context, target Target, args Args) {
	items := args.NonEmpty()
	if len(items) == 0 {
		ctx.Print("autojoin requires a guild name and channel name")
		return
	}
	if !ctx.Session.Connected() {
		return
	}
	view := ctx.Session.View()
	if view == nil {
		return
	}

	token, guildName, channelName, ok := resolveListTarget(ctx, view, items)
	if !ok {
		return
	}

	updated := lists.Add(ctx.Config.AutojoinChannels(), token)
	ctx.Config.Set("autojoin_channels", updated)

	if channelName != "" {
		ctx.Print("Now autojoining %s in %s", guildName, channelName)
		handleJoin(ctx, target, args)
	} else {
		ctx.Print("Now autojoining all channels in %s", guildName)
	}
}

// printListed renders one persisted list, resolving names where the cache
// still has them and falling back to raw IDs where it does not.
func printListed(ctx *Context, view cache.View, serverHeading, channelHeading, persisted string) {
	var guilds []string
	var channels []ident.GuildOrChannel
	for _, item := range lists.Targets(persisted) {
		if item.IsGuild() {
			guilds = append(guilds, item.GuildID)
		} else {
			channels = append(channels, item)
		}
	}

	ctx.Print("%s: (%d)", serverHeading, len(guilds))
	for _, guildID := range guilds {
		if guild, ok := view.Guild(guildID); ok {
			ctx.Print("  %s", guild.Name)
		}
	}

	ctx.Print("%s: (%d)", channelHeading, len(channels))
	for _, item := range channels {
		channel, ok := view.Channel(item.ChannelID)
		if !ok {
			ctx.Print("  %s %s", item.GuildID, item.ChannelID)
			continue
		}
		if item.GuildID == "" {
			ctx.Print("  %s", channel.Name)
			continue
		}
		guildName := item.GuildID
		if guild, ok := view.Guild(item.GuildID); ok {
			guildName = guild.Name
		}
		ctx.Print("  %s: %s", guildName, channel.Name)
	}
}

func handleWatched(ctx *Context, target Target, args Args) {
	if !ctx.Session.Connected() {
		return
	}
	view := ctx.Session.View()
	if view == nil {
		return
	}
	printListed(ctx, view, "Watched Servers", "Watched Channels", ctx.Config.WatchedChannels())
}

func handleAutojoined(ctx *Context, target Target, args Args) {
	if !ctx.Session.Connected() {
		return
	}
	view := ctx.Session.View()
	if view == nil {
		return
	}
	printListed(ctx, view, "Autojoin Servers", "Autojoin Channels", ctx.Config.AutojoinChannels())
}

// =============================================================================
// PRESENCE COMMANDS
// =============================================================================

func handleStatus(ctx *Context, target Target, args Args) {
	statusStr := "online"
	if items := args.NonEmpty(); len(items) > 0 {
		statusStr = items[0]
	}

	status, err := presence.ParseStatus(statusStr)
	if err != nil {
		ctx.Print("Unknown status %q", statusStr)
		return
	}
	if !ctx.Session.Connected() {
		return
	}
	api := ctx.Session.Presence()
	if api == nil {
		return
	}

	ctx.spawn("set status", func(tctx context.Context) error {
		if err := ctx.Status.SetStatus(api, status); err != nil {
			ctx.Print("Error setting status: %s", err)
			return err
		}
		ctx.Print("Status set to %s %s", statusStr, status)
		return nil
	})
}

func handleGame(ctx *Context, target Target, args Args) {
	activity, err := presence.ParseActivity(args.NonEmpty(), args.Rest)
	if err != nil {
		ctx.Print("%s", err)
		return
	}
	if !ctx.Session.Connected() {
		return
	}
	api := ctx.Session.Presence()
	if api == nil {
		return
	}

	ctx.spawn("set activity", func(tctx context.Context) error {
		if err := ctx.Status.SetActivity(api, activity); err != nil {
			ctx.Print("Error setting activity: %s", err)
			return err
		}
		return nil
	})
}

// =============================================================================
// MESSAGE COMMANDS
// =============================================================================

func handleUpload(ctx *Context, target Target, args Args) {
	if len(args.NonEmpty()) == 0 {
		ctx.Print("upload requires an argument")
		return
	}
	if target.ChannelID == "" || !ctx.Session.Connected() {
		return
	}
	msgs := ctx.Session.Messages()
	if msgs == nil {
		return
	}

	path := args.Rest
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	full, err := filepath.Abs(path)
	if err != nil {
		ctx.Print("Unable to resolve file path: %s", err)
		return
	}

	channelID := target.ChannelID
	ctx.spawn("upload "+filepath.Base(full), func(tctx context.Context) error {
		f, err := os.Open(full)
		if err != nil {
			ctx.Print("Unable to resolve file path: %s", err)
			return err
		}
		defer f.Close()

		if err := msgs.SendFile(channelID, filepath.Base(full), f); err != nil {
			ctx.Print("Unable to upload file: %s", err)
			return err
		}
		ctx.Print("File uploaded successfully")
		return nil
	})
}

// FormatDecorated applies a subcommand's text decoration.
func FormatDecorated(cmd, text string) string {
	switch cmd {
	case "me":
		return fmt.Sprintf("_%s_", text)
	case "tableflip":
		return fmt.Sprintf("%s (╯°□°）╯︵ ┻━┻", text)
	case "unflip":
		return fmt.Sprintf("%s ┬─┬ ノ( ゜-゜ノ)", text)
	case "shrug":
		return fmt.Sprintf(`%s ¯\_(ツ)_/¯`, text)
	case "spoiler":
		return fmt.Sprintf("||%s||", text)
	default:
		return text
	}
}

func handleFormatted(ctx *Context, target Target, args Args) {
	if target.ChannelID == "" || !ctx.Session.Connected() {
		return
	}
	msgs := ctx.Session.Messages()
	if msgs == nil {
		return
	}

	msg := FormatDecorated(args.Base, args.Rest)
	channelID := target.ChannelID
	ctx.spawn("send "+args.Base, func(tctx context.Context) error {
		if err := msgs.SendMessage(channelID, msg); err != nil {
			ctx.Print("Unable to send message: %s", err)
			return err
		}
		return nil
	})
}
