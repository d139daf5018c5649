// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lineedit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jeranaias/relaycord/internal/gateway"
)

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParseDelete(t *testing.T) {
	intent, ok := Parse("3")
	if !ok {
		t.Fatal("Parse(3) should recognize a delete intent")
	}
	del, isDelete := intent.(Delete)
	if !isDelete || del.N != 3 {
		t.Errorf("Parse(3) = %+v", intent)
	}
}

func TestParseSubstitute(t *testing.T) {
	tests := []struct {
		input string
		want  Substitute
	}{
		{"1 s/foo/bar/", Substitute{N: 1, Old: "foo", New: "bar"}},
		{"1 s/foo/bar", Substitute{N: 1, Old: "foo", New: "bar"}},
		{"2 s/foo/bar/g", Substitute{N: 2, Old: "foo", New: "bar", Flags: "g"}},
		{"1 s/foo//", Substitute{N: 1, Old: "foo", New: ""}},
		{"10 s/a b/c d/", Substitute{N: 10, Old: "a b", New: "c d"}},
	}

	for _, tc := range tests {
		intent, ok := Parse(tc.input)
		if !ok {
			t.Errorf("Parse(%q) should recognize a substitute intent", tc.input)
			continue
		}
		sub, isSub := intent.(Substitute)
		if !isSub || sub != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.input, intent, tc.want)
		}
	}
}

func TestParseRejectsNormalChat(t *testing.T) {
	tests := []string{
		"hello world",
		"0",
		"3 fish",
		"s/foo/bar/",
		"1s/foo/bar/",
		"",
		"-1",
		"1.5",
	}

	for _, input := range tests {
		if intent, ok := Parse(input); ok {
			t.Errorf("Parse(%q) = %+v, want no intent", input, intent)
		}
	}
}

func TestSubstituteApply(t *testing.T) {
	first := Substitute{Old: "foo", New: "bar"}
	if got := first.Apply("foo foo"); got != "bar foo" {
		t.Errorf("non-global Apply = %q, want %q", got, "bar foo")
	}

	global := Substitute{Old: "foo", New: "bar", Flags: "g"}
	if got := global.Apply("foo foo"); got != "bar bar" {
		t.Errorf("global Apply = %q, want %q", got, "bar bar")
	}
}

// =============================================================================
// MESSAGE LOOKUP TESTS
// =============================================================================

type fakeHistory struct {
	msgs []gateway.Message
	err  error

	calls     int
	lastLimit int
}

func (f *fakeHistory) Messages(channelID string, limit int) ([]gateway.Message, error) {
	f.calls++
	f.lastLimit = limit
	return f.msgs, f.err
}

func historyOf(authors ...string) *fakeHistory {
	h := &fakeHistory{}
	for i, author := range authors {
		h.msgs = append(h.msgs, gateway.Message{
			ID:       fmt.Sprintf("m%d", i),
			AuthorID: author,
			Content:  fmt.Sprintf("content %d", i),
		})
	}
	return h
}

func TestNthOwnMessageSkipsOtherAuthors(t *testing.T) {
	h := historyOf("self", "other", "self", "other", "self")

	msg, err := NthOwnMessage(h, "chan", "self", 2)
	if err != nil {
		t.Fatalf("NthOwnMessage: %v", err)
	}
	if msg.ID != "m2" {
		t.Errorf("got %s, want m2", msg.ID)
	}
	if h.lastLimit != HistoryFetchLimit {
		t.Errorf("fetch limit = %d, want %d", h.lastLimit, HistoryFetchLimit)
	}
}

func TestNthOwnMessageRangeExceeded(t *testing.T) {
	h := historyOf("self")

	_, err := NthOwnMessage(h, "chan", "self", 51)
	if !errors.Is(err, ErrRangeExceeded) {
		t.Errorf("err = %v, want ErrRangeExceeded", err)
	}
	if h.calls != 0 {
		t.Error("range check must happen before any fetch")
	}

	// The 50th is still in range.
	_, err = NthOwnMessage(h, "chan", "self", 50)
	if errors.Is(err, ErrRangeExceeded) {
		t.Error("50 is within range; it should fail as not-found instead")
	}
}

func TestNthOwnMessageNotFoundIsDistinct(t *testing.T) {
	h := historyOf("self", "other")

	_, err := NthOwnMessage(h, "chan", "self", 2)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrRangeExceeded) {
		t.Error("not-found must be distinct from range-exceeded")
	}
}

func TestNthOwnMessagePropagatesFetchError(t *testing.T) {
	h := &fakeHistory{err: errors.New("gateway down")}

	if _, err := NthOwnMessage(h, "chan", "self", 1); err == nil {
		t.Error("fetch errors should propagate")
	}
}
