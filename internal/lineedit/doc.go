// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lineedit recognizes the sed-style edit/delete micro-language typed
// into the message box ("3", "1 s/foo/bar/g") and locates the target among
// the sender's recent messages.
package lineedit
