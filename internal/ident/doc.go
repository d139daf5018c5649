// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ident defines the printable identifier tokens used to persist
// watch and autojoin entries, and the GuildOrChannel value they decode to.
//
// The token grammar ("G<digits>", "G<digits>C<digits>", "C<digits>") is an
// external contract: tokens written by old builds must keep decoding.
package ident
