// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands is the /discord command surface: subcommand dispatch,
// buffer-input handling (messages, line edits, typing), uniform
// option-change reporting, and argument completion.
//
// Handlers never block the caller on the network; anything that performs a
// gateway call runs on a task from the injected runner.
package commands
