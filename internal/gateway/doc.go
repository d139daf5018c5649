// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway wraps the Discord gateway session behind the narrow
// interfaces the core consumes: message operations, the user directory, and
// presence. The session's entity state feeds the cache view.
package gateway
