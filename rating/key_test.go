package rating

import "testing"

// TestNewKey_ModOrderInsensitive verifies that every permutation of the same
// mod multiset produces an identical key.
func TestNewKey_ModOrderInsensitive(t *testing.T) {
	perms := [][]Mod{
		{"DT", "HR", "HD"},
		{"DT", "HD", "HR"},
		{"HR", "DT", "HD"},
		{"HR", "HD", "DT"},
		{"HD", "DT", "HR"},
		{"HD", "HR", "DT"},
	}

	base := NewKey(42, 1, perms[0]...)
	for _, perm := range perms {
		k := NewKey(42, 1, perm...)
		if k != base {
			t.Errorf("NewKey(42, 1, %v) = %v, want %v", perm, k, base)
		}
	}

	// Equal keys must hash identically; a map collapses them to one entry.
	m := make(map[Key]int)
	for _, perm := range perms {
		m[NewKey(42, 1, perm...)]++
	}
	if len(m) != 1 {
		t.Errorf("map over permuted keys has %d entries, want 1", len(m))
	}
}

func TestNewKey_Distinct(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
	}{
		{"different chart", NewKey(1, 1), NewKey(2, 1)},
		{"different ruleset", NewKey(1, 1), NewKey(1, 2)},
		{"different mods", NewKey(1, 1, "HR"), NewKey(1, 1, "DT")},
		{"mods vs none", NewKey(1, 1, "HR"), NewKey(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("keys %v and %v compare equal, want distinct", tt.a, tt.b)
			}
		})
	}
}

func TestNewKey_DeduplicatesMods(t *testing.T) {
	a := NewKey(7, 3, "HR", "HR", "DT")
	b := NewKey(7, 3, "DT", "HR")
	if a != b {
		t.Errorf("duplicate mods changed identity: %v != %v", a, b)
	}
}

func TestNewKey_IgnoresEmptyMod(t *testing.T) {
	a := NewKey(7, 3, "", "HR")
	b := NewKey(7, 3, "HR")
	if a != b {
		t.Errorf("empty mod changed identity: %v != %v", a, b)
	}
}

func TestNewKey_IgnoresSeparatorMod(t *testing.T) {
	// An acronym containing the canonical separator cannot round-trip
	// through Mods() and must not collide with the mod set it resembles.
	a := NewKey(7, 3, "DT,HR")
	b := NewKey(7, 3, "DT", "HR")
	if a == b {
		t.Errorf("separator-bearing mod collided with a real mod set: %v", a)
	}
	if c := NewKey(7, 3); a != c {
		t.Errorf("separator-bearing mod changed identity: %v != %v", a, c)
	}
	if mods := a.Mods(); mods != nil {
		t.Errorf("Mods() = %v, want none", mods)
	}
}

func TestKey_Mods(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want []Mod
	}{
		{"none", NewKey(1, 1), nil},
		{"sorted", NewKey(1, 1, "HR", "DT"), []Mod{"DT", "HR"}},
		{"single", NewKey(1, 1, "FL"), []Mod{"FL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.key.Mods()
			if len(got) != len(tt.want) {
				t.Fatalf("Mods() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Mods()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"plain", NewKey(42, 3), "42/3"},
		{"with mods", NewKey(42, 3, "HR", "DT"), "42/3+DT,HR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
