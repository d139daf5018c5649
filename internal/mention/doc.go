// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mention rewrites human-typed "#channel" and "@User#disc" shorthand
// in outgoing text into the service's canonical mention syntax.
package mention
