// relaycord - a Discord bridge core with an IRC-style command surface.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/relaycord/internal/cache"
	"github.com/jeranaias/relaycord/internal/commands"
	"github.com/jeranaias/relaycord/internal/config"
	"github.com/jeranaias/relaycord/internal/gateway"
	"github.com/jeranaias/relaycord/internal/presence"
	"github.com/jeranaias/relaycord/internal/resolve"
	"github.com/jeranaias/relaycord/internal/tasks"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// SESSION ADAPTER
// =============================================================================

// liveSession adapts the gateway connection to the command layer's session
// interface. Nil until Connect succeeds; accessors guard with the mutex so
// worker tasks and the input loop can race safely.
type liveSession struct {
	mu   sync.Mutex
	conn *gateway.Session
	log  *logrus.Entry
}

func (s *liveSession) Connect(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return nil
	}
	conn, err := gateway.Connect(token, s.log)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *liveSession) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *liveSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

func (s *liveSession) current() *gateway.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *liveSession) SelfID() string {
	conn := s.current()
	if conn == nil {
		return ""
	}
	if me, ok := conn.View().CurrentUser(); ok {
		return me.ID
	}
	return ""
}

func (s *liveSession) View() cache.View {
	if conn := s.current(); conn != nil {
		return conn.View()
	}
	return nil
}

func (s *liveSession) Messages() gateway.MessageAPI {
	if conn := s.current(); conn != nil {
		return conn
	}
	return nil
}

func (s *liveSession) Directory() gateway.DirectoryAPI {
	if conn := s.current(); conn != nil {
		return conn
	}
	return nil
}

func (s *liveSession) Presence() gateway.PresenceAPI {
	if conn := s.current(); conn != nil {
		return conn
	}
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// consolePrinter serializes user-visible lines onto stdout. Worker tasks
// print from their own goroutines.
type consolePrinter struct {
	mu sync.Mutex
}

func (p *consolePrinter) Print(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Println(line)
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	log := setupLogging()

	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := config.Open(path, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	defer close(done)
	if err := store.WatchReload(done); err != nil {
		log.WithError(err).Warn("config reload watch unavailable")
	}

	session := &liveSession{log: log.WithField("component", "gateway")}
	runner := tasks.NewRunner(5, 30*time.Second, log)
	out := &consolePrinter{}

	ctx := &commands.Context{
		Config:  store,
		Session: session,
		Status:  presence.NewManager(),
		Typing:  presence.NewThrottle(),
		Tasks:   runner,
		Out:     out,
		Log:     log.WithField("component", "commands"),
	}
	dispatcher := commands.NewDispatcher(ctx)

	// Surface worker failures without polling.
	go func() {
		for n := range runner.Notifications() {
			if n.Status == tasks.TaskStatusFailed {
				log.WithFields(logrus.Fields{
					"task":  n.Description,
					"error": n.Error,
				}).Warn("task failed")
			}
		}
	}()

	if store.Autostart() {
		dispatcher.Dispatch(commands.Target{}, "connect")
	}

	runInputLoop(ctx, dispatcher)

	runner.Stop()
	if err := session.Disconnect(); err != nil {
		log.WithError(err).Warn("disconnect failed")
	}
}

func setupLogging() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("RELAYCORD_LOG")); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logrus.NewEntry(logger)
}

// =============================================================================
// INPUT LOOP
// =============================================================================

// runInputLoop reads stdin until EOF or /quit. "/discord ..." lines go to the
// dispatcher, "/buffer ..." switches the active channel, everything else is
// treated as buffer input for the active channel.
func runInputLoop(ctx *commands.Context, dispatcher *commands.Dispatcher) {
	var target commands.Target

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		commands.NotifyTyping(ctx, target, line)

		switch {
		case line == "/quit" || line == "/exit":
			return
		case strings.HasPrefix(line, "/discord"):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "/discord"))
			dispatcher.Dispatch(target, rest)
		case strings.HasPrefix(line, "/buffer "):
			target = switchBuffer(ctx, strings.TrimPrefix(line, "/buffer "))
		case strings.HasPrefix(line, "/nick"):
			commands.HandleNick(ctx, target, strings.TrimPrefix(line, "/nick"))
		default:
			commands.HandleInput(ctx, target, line)
		}
	}
}

// switchBuffer resolves "<guild> [channel]" to an active buffer target.
func switchBuffer(ctx *commands.Context, rest string) commands.Target {
	if !ctx.Session.Connected() {
		ctx.Print("Not connected")
		return commands.Target{}
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		ctx.Print("buffer requires a guild name")
		return commands.Target{}
	}

	resolver := resolve.New(ctx.Session.View())
	if len(fields) > 1 {
		guild, channel, ok := resolver.SearchChannel(fields[0], fields[1])
		if !ok {
			ctx.Print("Couldn't find channel")
			return commands.Target{}
		}
		ctx.Print("Switched to %s #%s", guild.Name, channel.Name)
		return commands.Target{GuildID: guild.ID, ChannelID: channel.ID}
	}

	guild, ok := resolver.SearchGuild(fields[0])
	if !ok {
		ctx.Print("Unable to find server")
		return commands.Target{}
	}
	ctx.Print("Switched to %s", guild.Name)
	return commands.Target{GuildID: guild.ID}
}
