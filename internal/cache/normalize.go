// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"strings"
)

// =============================================================================
// NAME NORMALIZATION
// =============================================================================

// ArgStrip removes the characters a line-based client cannot carry inside a
// command argument: spaces and the comma argument separator. Completion
// output and name matching both go through this, so "My Guild" and the typed
// "MyGuild" agree.
func ArgStrip(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' {
			return -1
		}
		return r
	}, name)
}

// NormalizeName arg-strips and lowercases a name for case-insensitive
// comparison.
func NormalizeName(name string) string {
	return strings.ToLower(ArgStrip(name))
}
