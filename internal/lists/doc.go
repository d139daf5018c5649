// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lists maintains the watch and autojoin lists: ordered, deduplicated
// sequences of identifier tokens persisted as a comma-joined option string.
package lists
