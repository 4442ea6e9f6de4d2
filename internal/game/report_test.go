package game

import (
	"strings"
	"testing"
)

func TestReport_ContainsSessionAndTotals(t *testing.T) {
	ts := NewTestScene(WithQueuedCast("s1", 600))
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if tick := ts.RunUntil(atBite, 300); tick < 0 {
		t.Fatal("never reached bite")
	}
	ts.Engine.ReactCatch()
	ts.RunFrames(1)

	rep := ts.Engine.BuildReport(10)
	for _, want := range []string{
		"Creekside debug report",
		"player: tile=(18,8) facing=right",
		"state=caught",
		"casts=1 caught=1",
		"firefly=24",
		"events (last",
	} {
		if !strings.Contains(rep, want) {
			t.Errorf("report missing %q:\n%s", want, rep)
		}
	}
}

func TestReport_PlaceholdersBeforeFirstSession(t *testing.T) {
	ts := NewTestScene()
	rep := ts.Engine.BuildReport(5)
	if !strings.Contains(rep, "session=<none>") {
		t.Fatalf("expected session placeholder:\n%s", rep)
	}
	if !strings.Contains(rep, "last_reaction=-") {
		t.Fatalf("expected reaction placeholder:\n%s", rep)
	}
	if !strings.Contains(rep, "quota_remaining=-") {
		t.Fatalf("expected quota placeholder:\n%s", rep)
	}
}
