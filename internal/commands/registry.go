// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents one subcommand of the /discord command.
type Command struct {
	// Name is the subcommand name (e.g., "watch")
	Name string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "watch <guild> [channel]")
	Usage string

	// Handler executes the subcommand
	Handler func(ctx *Context, target Target, args Args)
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered subcommands.
type Registry struct {
	commands map[string]*Command
	order    []string
}

// NewRegistry creates a registry with all built-in subcommands.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
}

// Get retrieves a command by name, or nil.
func (r *Registry) Get(name string) *Command {
	return r.commands[name]
}

// All returns all registered commands in registration order.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "connect",
		Description: "Connect to the service with the saved token",
		Handler:     handleConnect,
	})
	r.Register(&Command{
		Name:        "disconnect",
		Description: "Close the current connection",
		Handler:     handleDisconnect,
	})
	r.Register(&Command{
		Name:        "irc-mode",
		Description: "Render messages IRC-style",
		Handler:     handleIRCMode,
	})
	r.Register(&Command{
		Name:        "discord-mode",
		Description: "Render messages Discord-style",
		Handler:     handleDiscordMode,
	})
	r.Register(&Command{
		Name:        "token",
		Description: "Save the account token",
		Usage:       "token <value>",
		Handler:     handleToken,
	})
	r.Register(&Command{
		Name:        "autostart",
		Description: "Connect automatically on launch",
		Handler:     handleAutostart,
	})
	r.Register(&Command{
		Name:        "noautostart",
		Description: "Do not connect automatically on launch",
		Handler:     handleNoAutostart,
	})
	r.Register(&Command{
		Name:        "query",
		Description: "Open a DM with a user by name substring",
		Usage:       "query <name>",
		Handler:     handleQuery,
	})
	r.Register(&Command{
		Name:        "join",
		Description: "Open a guild's channels, or one channel",
		Usage:       "join <guild> [channel]",
		Handler:     handleJoin,
	})
	r.Register(&Command{
		Name:        "watch",
		Description: "Add a guild or channel to the watch list",
		Usage:       "watch <guild> [channel]",
		Handler:     handleWatch,
	})
	r.Register(&Command{
		Name:        "watched",
		Description: "List watched guilds and channels",
		Handler:     handleWatched,
	})
	r.Register(&Command{
		Name:        "autojoin",
		Description: "Add a guild or channel to the autojoin list",
		Usage:       "autojoin <guild> [channel]",
		Handler:     handleAutojoin,
	})
	r.Register(&Command{
		Name:        "autojoined",
		Description: "List autojoined guilds and channels",
		Handler:     handleAutojoined,
	})
	r.Register(&Command{
		Name:        "status",
		Description: "Set the presence status",
		Usage:       "status <online|offline|invisible|idle|dnd>",
		Handler:     handleStatus,
	})
	r.Register(&Command{
		Name:        "game",
		Description: "Set or clear the activity",
		Usage:       "game [type] <text>",
		Handler:     handleGame,
	})
	r.Register(&Command{
		Name:        "upload",
		Description: "Upload a file to the current channel",
		Usage:       "upload <path>",
		Handler:     handleUpload,
	})
	for _, name := range []string{"me", "tableflip", "unflip", "shrug", "spoiler"} {
		r.Register(&Command{
			Name:        name,
			Description: "Send decorated text to the current channel",
			Usage:       name + " <text>",
			Handler:     handleFormatted,
		})
	}
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher routes a tokenized command line to its handler.
type Dispatcher struct {
	registry *Registry
	ctx      *Context
}

// NewDispatcher creates a dispatcher over the built-in registry.
func NewDispatcher(ctx *Context) *Dispatcher {
	return &Dispatcher{registry: NewRegistry(), ctx: ctx}
}

// Registry exposes the dispatcher's command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch parses and runs one command line (the text after "/discord ").
// Unknown subcommands print a diagnostic and change nothing.
func (d *Dispatcher) Dispatch(target Target, line string) {
	args := ParseArgs(line)

	if args.Base == "" {
		d.ctx.Print("no action provided.")
		d.ctx.Print("see /help discord for more information")
		return
	}

	cmd := d.registry.Get(args.Base)
	if cmd == nil {
		d.ctx.Print("Unknown command")
		return
	}

	cmd.Handler(d.ctx, target, args)
}
