package main

import (
	"strings"
	"testing"
)

func TestCatchRate(t *testing.T) {
	rs := runStats{caught: 6, missed: 3, timeouts: 3}
	if got := catchRate(rs); got != 50.0 {
		t.Fatalf("expected 50%%, got %.1f", got)
	}
	if got := catchRate(runStats{}); got != 0 {
		t.Fatalf("expected 0%% with no resolutions, got %.1f", got)
	}
}

func TestClassifySession_HotBite(t *testing.T) {
	rs := runStats{casts: 10, caught: 7, missed: 2, timeouts: 1}
	label, reason := classifySession(rs)
	if label != "hot_bite" {
		t.Fatalf("expected hot_bite, got %s (%s)", label, reason)
	}
	if !strings.Contains(reason, "catch_rate") {
		t.Fatalf("expected reason to carry the catch rate, got: %s", reason)
	}
}

func TestClassifySession_ButterfingersBeatsRate(t *testing.T) {
	rs := runStats{casts: 10, caught: 2, missed: 1, timeouts: 5}
	label, _ := classifySession(rs)
	if label != "butterfingers" {
		t.Fatalf("expected butterfingers when timeouts dominate, got %s", label)
	}
}

func TestClassifySession_IdleWhenNoCasts(t *testing.T) {
	label, reason := classifySession(runStats{})
	if label != "idle" {
		t.Fatalf("expected idle, got %s (%s)", label, reason)
	}
}

func TestFormatCounts_SortedAndStable(t *testing.T) {
	got := formatCounts(map[string]int{"uncommon": 2, "common": 5, "rare": 1})
	want := "common=5 rare=1 uncommon=2"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := formatCounts(nil); got != "none" {
		t.Fatalf("expected none for empty map, got %q", got)
	}
}

func TestReactionSummary(t *testing.T) {
	got := reactionSummary([]float64{400, 500, 300})
	want := "min=300 avg=400.0 max=500 (n=3)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := reactionSummary(nil); got != "n/a" {
		t.Fatalf("expected n/a for no reactions, got %q", got)
	}
}
