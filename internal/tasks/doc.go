// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks runs gateway calls on background goroutines so the input
// loop never blocks on the network. Every spawned task is a cancellable
// handle; stopping the runner cancels whatever is still in flight.
package tasks
