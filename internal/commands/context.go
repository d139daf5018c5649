// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/relaycord/internal/cache"
	"github.com/jeranaias/relaycord/internal/config"
	"github.com/jeranaias/relaycord/internal/gateway"
	"github.com/jeranaias/relaycord/internal/presence"
	"github.com/jeranaias/relaycord/internal/tasks"
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// Session is the slice of the connection lifecycle the dispatcher needs.
// When not connected, the API accessors return nil and handlers no-op.
type Session interface {
	// Connect opens the gateway connection with the given token.
	Connect(token string) error

	// Disconnect closes the connection. Safe to call when not connected.
	Disconnect() error

	// Connected reports whether a live connection exists.
	Connected() bool

	// SelfID returns the current user's ID, or "" when not connected.
	SelfID() string

	// View returns the entity cache view for the live connection.
	View() cache.View

	// Messages returns the message API for the live connection.
	Messages() gateway.MessageAPI

	// Directory returns the user-directory API for the live connection.
	Directory() gateway.DirectoryAPI

	// Presence returns the presence API for the live connection.
	Presence() gateway.PresenceAPI
}

// Printer writes one line to the user-visible surface. Implementations must
// be safe to call from worker goroutines.
type Printer interface {
	Print(line string)
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context provides access to application state for command handlers. It
// follows the dependency injection pattern, allowing handlers to reach
// collaborators without coupling to the application structure.
type Context struct {
	// Config is the persisted option store
	Config *config.Store

	// Session owns the gateway connection lifecycle
	Session Session

	// Status retains the last-set presence status for this session
	Status *presence.Manager

	// Typing throttles outgoing typing notifications
	Typing *presence.Throttle

	// Tasks runs gateway calls off the host loop
	Tasks *tasks.Runner

	// Out receives user-visible output lines
	Out Printer

	// Log is the structured logger for the command layer
	Log *logrus.Entry
}

// Target identifies the buffer a command or input line was issued from. The
// zero value means no channel context (e.g. the core buffer).
type Target struct {
	GuildID   string
	ChannelID string
}

// Print writes a formatted line to the output surface.
func (c *Context) Print(format string, args ...interface{}) {
	c.Out.Print(fmt.Sprintf(format, args...))
}

// spawn runs fn on a background task, printing nothing on success. Spawn
// failures only happen during shutdown and are logged, not shown.
func (c *Context) spawn(description string, fn tasks.Func) {
	if _, err := c.Tasks.Go(description, fn); err != nil {
		c.Log.WithError(err).WithField("task", description).Debug("task not spawned")
	}
}
