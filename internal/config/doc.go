// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config persists relaycord's options (token, mode flags, the
// watched and autojoin channel lists) as a TOML file and reports option
// changes with their before and after values.
package config
