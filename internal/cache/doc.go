// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides a read-only query facade over the gateway-owned
// Discord entity state.
//
// The underlying discordgo.State is mutated concurrently by the gateway event
// loop. The facade only ever takes short-lived read locks, copies out the
// small records the core needs, and releases the lock before returning; no
// lock is held across a network call.
package cache
