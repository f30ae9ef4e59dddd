package ambient

import (
	"testing"

	"github.com/jonwraymond/starcache/rating"
)

func TestWatchable_Current(t *testing.T) {
	w := NewWatchable(Selection{Ruleset: 1, Mods: []rating.Mod{"HR"}})

	cur := w.Current()
	if cur.Ruleset != 1 {
		t.Errorf("Ruleset = %d, want 1", cur.Ruleset)
	}
	if len(cur.Mods) != 1 || cur.Mods[0] != "HR" {
		t.Errorf("Mods = %v, want [HR]", cur.Mods)
	}

	// The returned slice is a copy; mutating it must not leak back.
	cur.Mods[0] = "DT"
	if got := w.Current().Mods[0]; got != "HR" {
		t.Errorf("Current mod mutated through copy: %q", got)
	}
}

func TestWatchable_SetNotifies(t *testing.T) {
	w := NewWatchable(Selection{Ruleset: 1})

	var got []Selection
	cancel := w.Watch(func(sel Selection) { got = append(got, sel) })
	defer cancel()

	w.Set(Selection{Ruleset: 2, Mods: []rating.Mod{"DT"}})
	w.SetRuleset(3)
	w.SetMods("HD", "HR")

	if len(got) != 3 {
		t.Fatalf("received %d notifications, want 3", len(got))
	}
	if got[0].Ruleset != 2 || got[1].Ruleset != 3 || got[2].Ruleset != 3 {
		t.Errorf("rulesets = %d,%d,%d, want 2,3,3", got[0].Ruleset, got[1].Ruleset, got[2].Ruleset)
	}
	if len(got[2].Mods) != 2 {
		t.Errorf("final mods = %v, want [HD HR]", got[2].Mods)
	}
}

func TestWatchable_RegistrationOrder(t *testing.T) {
	w := NewWatchable(Selection{Ruleset: 1})

	var order []string
	cancelA := w.Watch(func(Selection) { order = append(order, "a") })
	cancelB := w.Watch(func(Selection) { order = append(order, "b") })
	defer cancelA()
	defer cancelB()

	w.SetRuleset(2)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("notification order = %v, want [a b]", order)
	}
}

func TestWatchable_Cancel(t *testing.T) {
	w := NewWatchable(Selection{Ruleset: 1})

	calls := 0
	cancel := w.Watch(func(Selection) { calls++ })

	w.SetRuleset(2)
	cancel()
	cancel() // idempotent
	w.SetRuleset(3)

	if calls != 1 {
		t.Errorf("watcher called %d times, want 1", calls)
	}
}
