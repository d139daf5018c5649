// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/jeranaias/relaycord/internal/config"
)

// FormatChange renders an option-change outcome as one deterministic line.
// Every settings-mutating subcommand funnels through this so the wording is
// identical across token, irc-mode, autostart, and whatever comes next.
func FormatChange(c config.Change) string {
	switch c.Kind {
	case config.ChangeApplied:
		if c.Before != "" {
			return fmt.Sprintf("option %s successfully changed from %s to %s", c.Key, c.Before, c.After)
		}
		return fmt.Sprintf("option %s successfully set to %s", c.Key, c.After)
	case config.ChangeUnchanged:
		return fmt.Sprintf("option %s already contained %s", c.Key, c.Before)
	case config.ChangeNotFound:
		return fmt.Sprintf("option %s not found", c.Key)
	default:
		if c.Before != "" {
			return fmt.Sprintf("error when setting option %s to %s (was %s)", c.Key, c.After, c.Before)
		}
		return fmt.Sprintf("error when setting option %s to %s", c.Key, c.After)
	}
}
