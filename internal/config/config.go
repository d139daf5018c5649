// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/relaycord/internal/util"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config holds every persisted option. Channel lists are stored as a single
// comma-separated string of location tokens so the file stays hand-editable
// and round-trips exactly.
type Config struct {
	// Token is the account token used to connect.
	Token string `toml:"token"`

	// IRCMode renders incoming messages IRC-style instead of rich.
	IRCMode bool `toml:"irc_mode"`

	// Autostart connects automatically on launch.
	Autostart bool `toml:"autostart"`

	// WatchedChannels is the comma-joined token list of channels to open
	// in the background on connect.
	WatchedChannels string `toml:"watched_channels"`

	// AutojoinChannels is the comma-joined token list of channels to open
	// in the foreground on connect.
	AutojoinChannels string `toml:"autojoin_channels"`

	// SendTypingEvents broadcasts typing indicators while composing.
	SendTypingEvents bool `toml:"send_typing_events"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		IRCMode:          true,
		SendTypingEvents: false,
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the relaycord configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".relaycord"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// STORE
// =============================================================================

// Store owns the live configuration, its file path, and persistence. All
// access goes through the store; there is no package-level instance.
type Store struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
	log  *logrus.Entry
}

// Open loads the config file at path, falling back to defaults when the file
// does not exist yet. The first Save will create it.
func Open(path string, log *logrus.Entry) (*Store, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	return &Store{cfg: cfg, path: path, log: log.WithField("component", "config")}, nil
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// Path returns the config file path backing this store.
func (s *Store) Path() string {
	return s.path
}

// Save persists the current configuration. The write is atomic: either the
// previous file or the complete new one survives a crash. The file carries
// the token, so it is created owner-only.
func (s *Store) Save() error {
	s.mu.RLock()
	cfg := *s.cfg
	s.mu.RUnlock()

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# relaycord configuration file")
	fmt.Fprintln(&buf, "# Generated by relaycord - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(s.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reload re-reads the config file, replacing the in-memory state.
func (s *Store) Reload() error {
	cfg := Default()
	if _, err := toml.DecodeFile(s.path, cfg); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// =============================================================================
// TYPED ACCESSORS
// =============================================================================

// Token returns the account token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Token
}

// IRCMode reports whether IRC-style rendering is on.
func (s *Store) IRCMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.IRCMode
}

// Autostart reports whether to connect automatically on launch.
func (s *Store) Autostart() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Autostart
}

// SendTypingEvents reports whether typing indicators are broadcast.
func (s *Store) SendTypingEvents() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.SendTypingEvents
}

// WatchedChannels returns the raw comma-joined watched-channel list.
func (s *Store) WatchedChannels() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.WatchedChannels
}

// AutojoinChannels returns the raw comma-joined autojoin-channel list.
func (s *Store) AutojoinChannels() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.AutojoinChannels
}

// =============================================================================
// OPTION SET (WITH CHANGE REPORT)
// =============================================================================

// ChangeKind classifies the outcome of setting an option.
type ChangeKind int

const (
	// ChangeApplied means the option took a new value.
	ChangeApplied ChangeKind = iota

	// ChangeUnchanged means the option already held the value.
	ChangeUnchanged

	// ChangeNotFound means no option has that name.
	ChangeNotFound

	// ChangeFailed means setting or persisting failed.
	ChangeFailed
)

// Change reports the outcome of Set, including the previous value when one
// was known. Callers format it for the user; the store never prints.
type Change struct {
	Kind   ChangeKind
	Key    string
	Before string
	After  string
	Err    error
}

// OptionKeys lists every settable option name, for completion and the help
// text. Order is the display order.
func OptionKeys() []string {
	return []string{
		"token",
		"irc_mode",
		"autostart",
		"watched_channels",
		"autojoin_channels",
		"send_typing_events",
	}
}

// Set assigns a named option from its string form and persists the result.
// Assigning the value an option already holds is reported, not re-saved.
func (s *Store) Set(key, value string) Change {
	s.mu.Lock()

	var field *string
	var boolField *bool
	switch key {
	case "token":
		field = &s.cfg.Token
	case "irc_mode":
		boolField = &s.cfg.IRCMode
	case "autostart":
		boolField = &s.cfg.Autostart
	case "watched_channels":
		field = &s.cfg.WatchedChannels
	case "autojoin_channels":
		field = &s.cfg.AutojoinChannels
	case "send_typing_events":
		boolField = &s.cfg.SendTypingEvents
	default:
		s.mu.Unlock()
		return Change{Kind: ChangeNotFound, Key: key}
	}

	var before string
	if field != nil {
		before = *field
		if *field == value {
			s.mu.Unlock()
			return Change{Kind: ChangeUnchanged, Key: key, Before: before}
		}
		*field = value
	} else {
		before = strconv.FormatBool(*boolField)
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			s.mu.Unlock()
			return Change{Kind: ChangeFailed, Key: key, Before: before, After: value, Err: err}
		}
		if *boolField == parsed {
			s.mu.Unlock()
			return Change{Kind: ChangeUnchanged, Key: key, Before: before}
		}
		*boolField = parsed
		value = strconv.FormatBool(parsed)
	}
	s.mu.Unlock()

	if err := s.Save(); err != nil {
		return Change{Kind: ChangeFailed, Key: key, Before: before, After: value, Err: err}
	}
	return Change{Kind: ChangeApplied, Key: key, Before: before, After: value}
}

// =============================================================================
// FILE WATCHER
// =============================================================================

// WatchReload reloads the store whenever the config file changes on disk,
// until the done channel closes. External edits (another editor, a synced
// dotfile) show up without restarting; saves made through the store also
// trigger a reload, which is a no-op.
func (s *Store) WatchReload(done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	// Watch the directory, not the file: atomic saves replace the inode
	// and a file-level watch would go stale after the first rename.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Reload(); err != nil {
					s.log.WithError(err).Warn("config reload failed")
					continue
				}
				s.log.Debug("config reloaded from disk")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.WithError(err).Warn("config watcher error")
			}
		}
	}()

	return nil
}
