// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ident

import (
	"testing"
)

// =============================================================================
// CODEC TESTS
// =============================================================================

func TestEncodeChannel(t *testing.T) {
	tests := []struct {
		guild   string
		channel string
		want    string
	}{
		{"10", "20", "G10C20"},
		{"", "20", "C20"},
		{"123456789012345678", "876543210987654321", "G123456789012345678C876543210987654321"},
	}

	for _, tc := range tests {
		got := EncodeChannel(tc.guild, tc.channel)
		if got != tc.want {
			t.Errorf("EncodeChannel(%q, %q) = %q, want %q", tc.guild, tc.channel, got, tc.want)
		}
	}
}

func TestEncodeGuild(t *testing.T) {
	if got := EncodeGuild("10"); got != "G10" {
		t.Errorf("EncodeGuild(10) = %q, want G10", got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	targets := []GuildOrChannel{
		Guild("10"),
		Channel("10", "20"),
		Channel("", "20"),
		Guild("123456789012345678"),
		Channel("123456789012345678", "876543210987654321"),
	}

	for _, target := range targets {
		token := Encode(target)
		got, ok := Decode(token)
		if !ok {
			t.Errorf("Decode(%q) failed, want %+v", token, target)
			continue
		}
		if got != target {
			t.Errorf("Decode(Encode(%+v)) = %+v", target, got)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []string{
		"",
		"G",
		"C",
		"Gabc",
		"Gx",
		"G10Cabc",
		"GabcC20",
		"X10",
		"10",
		"G10C",
		"C20x",
		"g10",
	}

	for _, token := range tests {
		if got, ok := Decode(token); ok {
			t.Errorf("Decode(%q) = %+v, want failure", token, got)
		}
	}
}

func TestEqualsPerVariant(t *testing.T) {
	guild := Guild("10")
	channel := Channel("10", "20")
	bare := Channel("", "20")

	if !guild.EqualsGuildID("10") {
		t.Error("guild target should equal its guild ID")
	}
	if guild.EqualsChannelID("10") {
		t.Error("guild target must never equal a channel ID")
	}
	if channel.EqualsGuildID("10") {
		t.Error("channel target must never equal a guild ID")
	}
	if !channel.EqualsChannelID("20") {
		t.Error("channel target should equal its channel ID")
	}
	if !bare.EqualsChannelID("20") {
		t.Error("guild-less channel target should equal its channel ID")
	}
}
