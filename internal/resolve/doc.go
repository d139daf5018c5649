// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolve looks up guilds, channels, and users by the partial,
// human-typed names a line-based client hands us, against the entity cache.
package resolve
