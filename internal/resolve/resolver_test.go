// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import (
	"testing"

	"github.com/jeranaias/relaycord/internal/cache"
	"github.com/jeranaias/relaycord/internal/ident"
)

func testView() *cache.MemoryView {
	v := cache.NewMemoryView()
	v.AddGuild(cache.GuildRecord{ID: "10", Name: "My Guild"})
	v.AddGuild(cache.GuildRecord{ID: "11", Name: "Other"})
	v.AddChannel(cache.ChannelRecord{ID: "20", GuildID: "10", Name: "general", Kind: cache.KindText, Position: 2})
	v.AddChannel(cache.ChannelRecord{ID: "21", GuildID: "10", Name: "random", Kind: cache.KindText, Position: 1})
	v.AddChannel(cache.ChannelRecord{ID: "22", GuildID: "10", Name: "voice-chat", Kind: cache.KindVoice, Position: 0})
	v.AddChannel(cache.ChannelRecord{ID: "23", GuildID: "11", Name: "general", Kind: cache.KindText, Position: 0})
	return v
}

// =============================================================================
// GUILD SEARCH
// =============================================================================

func TestSearchGuildCaseInsensitive(t *testing.T) {
	r := New(testView())

	for _, query := range []string{"MyGuild", "myguild", "MYGUILD"} {
		g, ok := r.SearchGuild(query)
		if !ok || g.ID != "10" {
			t.Errorf("SearchGuild(%q) = %+v, %v, want guild 10", query, g, ok)
		}
	}
}

func TestSearchGuildNumericFallback(t *testing.T) {
	r := New(testView())

	g, ok := r.SearchGuild("11")
	if !ok || g.Name != "Other" {
		t.Errorf("SearchGuild(11) = %+v, %v, want guild Other", g, ok)
	}
}

func TestSearchGuildMiss(t *testing.T) {
	r := New(testView())

	if _, ok := r.SearchGuild("nope"); ok {
		t.Error("SearchGuild(nope) should miss")
	}
}

func TestSearchGuildTieBreaksByID(t *testing.T) {
	v := cache.NewMemoryView()
	v.AddGuild(cache.GuildRecord{ID: "200", Name: "Dup"})
	v.AddGuild(cache.GuildRecord{ID: "100", Name: "Dup"})
	r := New(v)

	g, ok := r.SearchGuild("Dup")
	if !ok || g.ID != "100" {
		t.Errorf("SearchGuild(Dup) = %+v, want the lower ID", g)
	}
}

// =============================================================================
// CHANNEL SEARCH
// =============================================================================

func TestSearchChannel(t *testing.T) {
	r := New(testView())

	g, ch, ok := r.SearchChannel("MyGuild", "general")
	if !ok || g.ID != "10" || ch.ID != "20" {
		t.Errorf("SearchChannel = (%+v, %+v, %v)", g, ch, ok)
	}
}

func TestSearchChannelSkipsNonText(t *testing.T) {
	r := New(testView())

	if _, _, ok := r.SearchChannel("MyGuild", "voice-chat"); ok {
		t.Error("voice channels must not resolve")
	}
}

func TestSearchChannelByID(t *testing.T) {
	r := New(testView())

	_, ch, ok := r.SearchChannel("10", "21")
	if !ok || ch.Name != "random" {
		t.Errorf("SearchChannel(10, 21) = %+v, %v", ch, ok)
	}
}

func TestSearchChannelScopedToGuild(t *testing.T) {
	r := New(testView())

	// Both guilds have a "general"; the guild argument picks which one.
	_, ch, ok := r.SearchChannel("Other", "general")
	if !ok || ch.ID != "23" {
		t.Errorf("SearchChannel(Other, general) = %+v, %v", ch, ok)
	}
}

// =============================================================================
// FLATTENING
// =============================================================================

func TestFlattenGuildExpandsByPosition(t *testing.T) {
	r := New(testView())

	flat := r.Flatten([]ident.GuildOrChannel{ident.Guild("10")})
	if flat.Len() != 1 {
		t.Fatalf("Len = %d, want 1", flat.Len())
	}
	// Position order: voice-chat(0), random(1), general(2).
	got := flat.Channels("10")
	want := []string{"22", "21", "20"}
	if len(got) != len(want) {
		t.Fatalf("Channels(10) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Channels(10)[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFlattenMixedTargets(t *testing.T) {
	r := New(testView())

	flat := r.Flatten([]ident.GuildOrChannel{
		ident.Channel("", "55"),
		ident.Channel("11", "23"),
		ident.Guild("10"),
	})

	keys := flat.Keys()
	if len(keys) != 3 || keys[0] != "" || keys[1] != "11" || keys[2] != "10" {
		t.Fatalf("Keys = %v", keys)
	}
	if got := flat.Channels(""); len(got) != 1 || got[0] != "55" {
		t.Errorf("guild-less channels = %v", got)
	}
}

func TestFlattenSkipsEvictedGuild(t *testing.T) {
	r := New(testView())

	flat := r.Flatten([]ident.GuildOrChannel{ident.Guild("404")})
	if flat.Len() != 0 {
		t.Errorf("evicted guild should contribute nothing, got %v", flat.Keys())
	}
}
