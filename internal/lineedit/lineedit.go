// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lineedit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jeranaias/relaycord/internal/gateway"
)

// =============================================================================
// INTENTS
// =============================================================================

// Intent is an edit or delete request against the sender's Nth most-recent
// own message in a channel, counting backward from newest (1 = most recent).
type Intent interface {
	// Line is the 1-based backward index of the target message.
	Line() int
}

// Delete requests deletion of the target message.
type Delete struct {
	N int
}

// Line returns the backward index.
func (d Delete) Line() int { return d.N }

// Substitute requests a sed-style substitution on the target message.
type Substitute struct {
	N     int
	Old   string
	New   string
	Flags string
}

// Line returns the backward index.
func (s Substitute) Line() int { return s.N }

// Global reports whether every occurrence should be replaced instead of just
// the first.
func (s Substitute) Global() bool {
	return strings.ContainsRune(s.Flags, 'g')
}

// Apply performs the substitution on the given content. The content is
// whatever the message holds at fetch time; concurrent edits elsewhere are
// last-write-wins and not detected.
func (s Substitute) Apply(content string) string {
	if s.Global() {
		return strings.ReplaceAll(content, s.Old, s.New)
	}
	return strings.Replace(content, s.Old, s.New, 1)
}

// =============================================================================
// PARSING
// =============================================================================

var (
	deletePattern = regexp.MustCompile(`^(\d+)$`)
	subPattern    = regexp.MustCompile(`^(\d+) s/([^/]*)/([^/]*)(?:/(\w*))?$`)
)

// Parse recognizes the line-edit micro-language typed as ordinary channel
// input:
//
//	<N>                        delete the Nth most-recent own message
//	<N> s/<old>/<new>[/flags]  substitute in it; flag g = all occurrences
//
// Anything else, including a line number of zero, is not an intent and flows
// on as normal chat text.
func Parse(input string) (Intent, bool) {
	input = strings.TrimSpace(input)

	if m := deletePattern.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return nil, false
		}
		return Delete{N: n}, true
	}

	if m := subPattern.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return nil, false
		}
		return Substitute{N: n, Old: m[2], New: m[3], Flags: m[4]}, true
	}

	return nil, false
}

// =============================================================================
// MESSAGE LOOKUP
// =============================================================================

// HistoryFetchLimit caps how far back the nth-own-message scan reaches.
const HistoryFetchLimit = 50

var (
	// ErrRangeExceeded reports a request beyond the history fetch cap. It
	// is distinct from ErrNotFound: the message may well exist, we just
	// refuse to page for it.
	ErrRangeExceeded = errors.New("requested message is beyond the history fetch limit")

	// ErrNotFound reports that the scan completed without finding enough
	// own messages.
	ErrNotFound = errors.New("no such message")
)

// History is the slice of the message API needed to scan recent messages.
type History interface {
	Messages(channelID string, limit int) ([]gateway.Message, error)
}

// NthOwnMessage returns the selfID user's nth most-recent message in the
// channel (1 = newest). Requests past HistoryFetchLimit fail with
// ErrRangeExceeded rather than silently clamping.
func NthOwnMessage(api History, channelID, selfID string, n int) (gateway.Message, error) {
	if n < 1 {
		return gateway.Message{}, fmt.Errorf("%w: line %d", ErrNotFound, n)
	}
	if n > HistoryFetchLimit {
		return gateway.Message{}, fmt.Errorf("%w: line %d > %d", ErrRangeExceeded, n, HistoryFetchLimit)
	}

	msgs, err := api.Messages(channelID, HistoryFetchLimit)
	if err != nil {
		return gateway.Message{}, err
	}

	seen := 0
	for _, msg := range msgs {
		if msg.AuthorID != selfID {
			continue
		}
		seen++
		if seen == n {
			return msg, nil
		}
	}
	return gateway.Message{}, fmt.Errorf("%w: own message %d of %d", ErrNotFound, n, seen)
}
