package game

import (
	"strings"
	"testing"
)

func TestSimLog_AddAndFilter(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "Bandit", "bandits", "combat", "hit", "Loner torso", 12.5)
	sl.Add(2, "Bandit", "bandits", "combat", "miss", "Loner", 4)
	sl.Add(3, "--", "--", "weather", "change", "storm", 0)
	sl.AddVerbose(3, "Loner", "loners", "move", "step", "(4,5)", 0)

	if n := len(sl.Entries()); n != 3 {
		t.Fatalf("verbose entry should be dropped when not verbose, got %d entries", n)
	}
	if got := sl.CountCategory("combat", ""); got != 2 {
		t.Fatalf("expected 2 combat entries, got %d", got)
	}
	hits := sl.Filter("combat", "hit")
	if len(hits) != 1 || hits[0].NumVal != 12.5 || hits[0].Tick != 1 {
		t.Fatalf("unexpected hit entries: %+v", hits)
	}
	if !strings.Contains(hits[0].String(), "[T=001] Bandit") {
		t.Fatalf("unexpected format: %q", hits[0].String())
	}
}

func TestSimLog_VerboseKeepsMovement(t *testing.T) {
	sl := NewSimLog(true)
	sl.AddVerbose(5, "Loner", "loners", "move", "step", "(4,5)", 0)
	if sl.CountCategory("move", "step") != 1 {
		t.Fatalf("verbose log should keep movement entries")
	}
}

func TestSimLog_Summary(t *testing.T) {
	a := armed("a", "loners", 1, 1, 100)
	b := armed("b", "bandits", 2, 2, 100)
	b.Dead = true
	sl := NewSimLog(false)
	sl.Add(1, "a", "loners", "combat", "kill", "b", 0)

	got := sl.Summary(7, []*Actor{a, b}, nil)
	for _, want := range []string{"T=007 (1 events)", "bandits    alive=0/1", "loners     alive=1/1", "effects: none"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}
