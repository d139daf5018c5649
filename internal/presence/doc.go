// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package presence maps status and activity keywords onto the service enums
// and owns the per-session presence state: the last-set status and the
// typing-notification throttle.
package presence
