package store

import (
	"testing"

	"cinesphere/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestInsightCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	_, fresh, err := LoadInsightCache("1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fresh {
		t.Fatal("expected empty cache to be stale")
	}

	want := model.Insights{
		Buzz:          "A dazzling ride.",
		Mood:          []string{"Tense", "Gripping"},
		ReviewSummary: "Critics agree.",
	}
	if err := SaveInsightCache("1", want); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got, fresh, err := LoadInsightCache("1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh {
		t.Fatal("expected cache to be fresh")
	}
	if got.Buzz != want.Buzz || got.ReviewSummary != want.ReviewSummary || len(got.Mood) != 2 {
		t.Fatalf("unexpected cached insights: %+v", got)
	}

	// Entries are keyed per movie.
	_, fresh, err = LoadInsightCache("2")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fresh {
		t.Fatal("expected cache miss for different movie")
	}
}

func TestRememberBooking_PrependsAndBounds(t *testing.T) {
	setTestDirs(t)

	for i := 0; i < maxRecentBookings+3; i++ {
		receipt := Receipt{
			Reference:  string(rune('a' + i)),
			MovieTitle: "Neon Nights",
			Seats:      []string{"B3", "B4"},
			Total:      29.0,
		}
		if err := RememberBooking(receipt); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	history, err := LoadRecentBookings()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(history) != maxRecentBookings {
		t.Fatalf("expected history to be bounded at %d, got %d", maxRecentBookings, len(history))
	}
	if history[0].Reference != string(rune('a'+maxRecentBookings+2)) {
		t.Fatalf("expected most recent booking first, got %q", history[0].Reference)
	}
}

func TestRememberBooking_DedupesByReference(t *testing.T) {
	setTestDirs(t)

	receipt := Receipt{Reference: "ref-1", MovieTitle: "The Last Duelist"}
	if err := RememberBooking(receipt); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberBooking(receipt); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	history, err := LoadRecentBookings()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected deduped history, got %d entries", len(history))
	}
}
