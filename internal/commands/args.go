// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// Args is a tokenized command line. The split is on single spaces only:
// consecutive spaces produce empty tokens in Args, while Rest keeps the
// trailing text verbatim for subcommands that take free text (a token value,
// a file path, a status message).
type Args struct {
	// Base is the subcommand name.
	Base string

	// Args are the space-split tokens after the subcommand.
	Args []string

	// Rest is the untouched text after the subcommand, trimmed at both ends.
	Rest string
}

// ParseArgs tokenizes the text after the command prefix (everything past
// "/discord ").
func ParseArgs(cmd string) Args {
	parts := strings.Split(cmd, " ")
	if len(parts) == 0 || parts[0] == "" {
		return Args{}
	}

	base := parts[0]
	return Args{
		Base: base,
		Args: parts[1:],
		Rest: strings.TrimSpace(cmd[len(base):]),
	}
}

// NonEmpty returns the argument tokens with empty entries dropped. Double
// spaces in the input otherwise show up as empty tokens.
func (a Args) NonEmpty() []string {
	result := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		if arg != "" {
			result = append(result, arg)
		}
	}
	return result
}
