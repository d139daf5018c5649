// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package presence

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// =============================================================================
// KEYWORD TESTS
// =============================================================================

func TestParseStatus(t *testing.T) {
	tests := []struct {
		keyword string
		want    discordgo.Status
	}{
		{"online", discordgo.StatusOnline},
		{"offline", discordgo.StatusInvisible},
		{"invisible", discordgo.StatusInvisible},
		{"idle", discordgo.StatusIdle},
		{"dnd", discordgo.StatusDoNotDisturb},
		{"DND", discordgo.StatusDoNotDisturb},
		{"Online", discordgo.StatusOnline},
	}

	for _, tc := range tests {
		got, err := ParseStatus(tc.keyword)
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", tc.keyword, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tc.keyword, got, tc.want)
		}
	}

	if _, err := ParseStatus("busy"); err == nil {
		t.Error("unknown keyword should be rejected")
	}
}

func TestParseActivity(t *testing.T) {
	activity, err := ParseActivity(nil, "")
	if err != nil || activity != nil {
		t.Errorf("no args should clear the activity, got %+v, %v", activity, err)
	}

	activity, err = ParseActivity([]string{"minecraft"}, "minecraft")
	if err != nil {
		t.Fatalf("ParseActivity: %v", err)
	}
	if activity.Type != discordgo.ActivityTypeGame || activity.Name != "minecraft" {
		t.Errorf("single arg = %+v, want playing minecraft", activity)
	}

	activity, err = ParseActivity([]string{"listening", "to", "a", "podcast"}, "listening to  a podcast")
	if err != nil {
		t.Fatalf("ParseActivity: %v", err)
	}
	if activity.Type != discordgo.ActivityTypeListening {
		t.Errorf("type = %v, want listening", activity.Type)
	}
	if activity.Name != "to  a podcast" {
		t.Errorf("name = %q, the remainder should stay verbatim", activity.Name)
	}

	if _, err := ParseActivity([]string{"dancing", "hard"}, "dancing hard"); err == nil {
		t.Error("unknown activity type should be rejected")
	}
}

// =============================================================================
// MANAGER TESTS
// =============================================================================

type fakePresenceAPI struct {
	status   discordgo.Status
	activity *discordgo.Activity
	err      error
}

func (f *fakePresenceAPI) UpdatePresence(status discordgo.Status, activity *discordgo.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.status = status
	f.activity = activity
	return nil
}

func (f *fakePresenceAPI) Typing(channelID string) error { return nil }

func TestManagerRetainsStatusAcrossActivityChanges(t *testing.T) {
	api := &fakePresenceAPI{}
	mgr := NewManager()

	if mgr.Last() != discordgo.StatusOnline {
		t.Errorf("default status = %v, want online", mgr.Last())
	}

	if err := mgr.SetStatus(api, discordgo.StatusIdle); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := mgr.SetActivity(api, &discordgo.Activity{Type: discordgo.ActivityTypeGame, Name: "chess"}); err != nil {
		t.Fatalf("SetActivity: %v", err)
	}

	if api.status != discordgo.StatusIdle {
		t.Errorf("activity change sent status %v, want the retained idle", api.status)
	}
	if api.activity == nil || api.activity.Name != "chess" {
		t.Errorf("activity = %+v", api.activity)
	}
}

func TestManagerDoesNotRetainFailedStatus(t *testing.T) {
	api := &fakePresenceAPI{err: errors.New("gateway down")}
	mgr := NewManager()

	if err := mgr.SetStatus(api, discordgo.StatusDoNotDisturb); err == nil {
		t.Fatal("SetStatus should propagate the gateway error")
	}
	if mgr.Last() != discordgo.StatusOnline {
		t.Errorf("failed update must not change the retained status, got %v", mgr.Last())
	}
}

// =============================================================================
// THROTTLE TESTS
// =============================================================================

func TestThrottleAllowsOneEventPerInterval(t *testing.T) {
	throttle := NewThrottle()

	if !throttle.Allow() {
		t.Fatal("first event should pass")
	}
	if throttle.Allow() {
		t.Error("second immediate event should be suppressed")
	}
}
