// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package presence

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/jeranaias/relaycord/internal/gateway"
)

// =============================================================================
// STATUS KEYWORDS
// =============================================================================

// ParseStatus maps a user-typed status keyword onto the service's status
// enum. Keywords are case-insensitive; "offline" and "invisible" are the
// same thing as far as the service is concerned.
func ParseStatus(keyword string) (discordgo.Status, error) {
	switch strings.ToLower(keyword) {
	case "online":
		return discordgo.StatusOnline, nil
	case "offline", "invisible":
		return discordgo.StatusInvisible, nil
	case "idle":
		return discordgo.StatusIdle, nil
	case "dnd":
		return discordgo.StatusDoNotDisturb, nil
	default:
		return "", fmt.Errorf("unknown status %q", keyword)
	}
}

// =============================================================================
// ACTIVITY KEYWORDS
// =============================================================================

// ParseActivity builds an activity from command arguments. No arguments
// clears the activity (nil); a single argument is a "playing" activity with
// that text; with more arguments the first is a type keyword and the
// remainder of rest is the activity text, verbatim.
func ParseActivity(args []string, rest string) (*discordgo.Activity, error) {
	switch {
	case len(args) == 0:
		return nil, nil
	case len(args) == 1:
		return &discordgo.Activity{Type: discordgo.ActivityTypeGame, Name: args[0]}, nil
	}

	keyword := args[0]
	// Keep the remainder verbatim rather than re-joining the split args;
	// internal runs of spaces in the activity text survive.
	text := rest
	if len(rest) > len(keyword) {
		text = rest[len(keyword)+1:]
	}

	var activityType discordgo.ActivityType
	switch keyword {
	case "playing", "play":
		activityType = discordgo.ActivityTypeGame
	case "listening":
		activityType = discordgo.ActivityTypeListening
	case "watching", "watch":
		activityType = discordgo.ActivityTypeWatching
	default:
		return nil, fmt.Errorf("unknown activity type %q", keyword)
	}

	return &discordgo.Activity{Type: activityType, Name: text}, nil
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the last-set status for one connection session, so a later
// activity change can reapply it without the caller re-specifying. It is
// injected wherever presence is set; there is deliberately no package-level
// instance.
type Manager struct {
	mu   sync.Mutex
	last discordgo.Status
}

// NewManager returns a manager with the status defaulting to online. The
// value lives in memory only and does not survive restarts.
func NewManager() *Manager {
	return &Manager{last: discordgo.StatusOnline}
}

// Last returns the most recently set status.
func (m *Manager) Last() discordgo.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// SetStatus applies a status on the gateway and retains it.
func (m *Manager) SetStatus(api gateway.PresenceAPI, status discordgo.Status) error {
	if err := api.UpdatePresence(status, nil); err != nil {
		return err
	}
	m.mu.Lock()
	m.last = status
	m.mu.Unlock()
	return nil
}

// SetActivity applies an activity on the gateway, reusing the retained
// status. A nil activity clears the current one.
func (m *Manager) SetActivity(api gateway.PresenceAPI, activity *discordgo.Activity) error {
	return api.UpdatePresence(m.Last(), activity)
}

// =============================================================================
// TYPING THROTTLE
// =============================================================================

// typingInterval is the minimum gap between typing notifications.
const typingInterval = 10 * time.Second

// Throttle rate-limits typing notifications for one session. Backed by a
// token-bucket limiter on a monotonic clock; safe for concurrent use.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle returns a throttle allowing one typing event per interval.
func NewThrottle() *Throttle {
	return &Throttle{limiter: rate.NewLimiter(rate.Every(typingInterval), 1)}
}

// Allow reports whether a typing event may be sent now.
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}
