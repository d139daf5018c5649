// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lists

import (
	"strings"

	"github.com/jeranaias/relaycord/internal/ident"
)

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// Every operation here is a pure function of the persisted comma-joined
// string; the list manager keeps no state between calls. Serializing
// concurrent read-modify-write cycles is the option store owner's problem,
// and two racing writers are last-write-wins by accepted design.

// Split breaks a persisted list into its tokens, dropping empty segments.
func Split(persisted string) []string {
	if persisted == "" {
		return nil
	}
	var tokens []string
	for _, tok := range strings.Split(persisted, ",") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Join re-serializes tokens as the persisted comma-joined form.
func Join(tokens []string) string {
	return strings.Join(tokens, ",")
}

// Add appends a token to the persisted list and returns the new persisted
// form. Deduplication is on the exact string form: an identical token is
// dropped, but two different encodings of the same entity both stay. That
// asymmetry is documented behavior, not a bug.
func Add(persisted, token string) string {
	tokens := Split(persisted)
	for _, existing := range tokens {
		if existing == token {
			return Join(tokens)
		}
	}
	return Join(append(tokens, token))
}

// Remove deletes every occurrence of a token and returns the new persisted
// form.
func Remove(persisted, token string) string {
	var kept []string
	for _, existing := range Split(persisted) {
		if existing != token {
			kept = append(kept, existing)
		}
	}
	return Join(kept)
}

// Contains reports whether the exact token is present.
func Contains(persisted, token string) bool {
	for _, existing := range Split(persisted) {
		if existing == token {
			return true
		}
	}
	return false
}

// Targets decodes the persisted list into resolved targets. Tokens that fail
// to decode are silently skipped; a user-editable store accumulates noise
// and iteration tolerates it. Re-calling re-parses from scratch.
func Targets(persisted string) []ident.GuildOrChannel {
	var targets []ident.GuildOrChannel
	for _, tok := range Split(persisted) {
		if target, ok := ident.Decode(tok); ok {
			targets = append(targets, target)
		}
	}
	return targets
}
