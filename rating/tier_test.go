package rating

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		name  string
		stars float64
		want  Tier
	}{
		{"zero", 0, TierEasy},
		{"below first cutoff", 1.99, TierEasy},
		{"at first cutoff", 2.0, TierNormal},
		{"mid normal", 2.5, TierNormal},
		{"at second cutoff", 2.7, TierHard},
		{"mid hard", 3.5, TierHard},
		{"at third cutoff", 4.0, TierExpert},
		{"mid expert", 5.0, TierExpert},
		{"at fourth cutoff", 5.3, TierInsane},
		{"mid insane", 5.5, TierInsane},
		{"at fifth cutoff", 6.5, TierExtreme},
		{"far beyond", 12.3, TierExtreme},
		{"negative", -1.0, TierEasy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierFor(tt.stars); got != tt.want {
				t.Errorf("TierFor(%v) = %v, want %v", tt.stars, got, tt.want)
			}
		})
	}
}

// TestTierFor_EpsilonTolerance verifies that a score within floating-point
// noise below a cutoff still classifies at the higher tier.
func TestTierFor_EpsilonTolerance(t *testing.T) {
	justBelow := 5.3 - tierEpsilon/2
	if got := TierFor(justBelow); got != TierInsane {
		t.Errorf("TierFor(%v) = %v, want %v", justBelow, got, TierInsane)
	}

	clearlyBelow := 5.3 - tierEpsilon*10
	if got := TierFor(clearlyBelow); got != TierExpert {
		t.Errorf("TierFor(%v) = %v, want %v", clearlyBelow, got, TierExpert)
	}
}

func TestTier_String(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierEasy, "Easy"},
		{TierNormal, "Normal"},
		{TierHard, "Hard"},
		{TierExpert, "Expert"},
		{TierInsane, "Insane"},
		{TierExtreme, "Extreme"},
		{Tier(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
