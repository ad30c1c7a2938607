package matcher

import "testing"

func TestSubstringMatcher(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		candidates []string
		wantIdx    int
		wantOK     bool
	}{
		{
			name:       "target contained in candidate",
			target:     "Cloud9",
			candidates: []string{"Sentinels", "Cloud9 Blue"},
			wantIdx:    1,
			wantOK:     true,
		},
		{
			name:       "candidate contained in target",
			target:     "Team Liquid Brazil",
			candidates: []string{"Liquid", "FURIA"},
			wantIdx:    0,
			wantOK:     true,
		},
		{
			name:       "case insensitive",
			target:     "FNATIC",
			candidates: []string{"fnatic", "NAVI"},
			wantIdx:    0,
			wantOK:     true,
		},
		{
			name:       "no relation",
			target:     "Cloud9",
			candidates: []string{"Sentinels", "100 Thieves"},
			wantOK:     false,
		},
		{
			name:       "first match wins",
			target:     "Team",
			candidates: []string{"Team Heretics", "Team Vitality"},
			wantIdx:    0,
			wantOK:     true,
		},
		{
			name:   "empty candidates",
			target: "Cloud9",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := SubstringMatcher{}.Match(tt.target, tt.candidates)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && idx != tt.wantIdx {
				t.Errorf("idx = %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

func TestLevenshteinMatcher(t *testing.T) {
	m := NewLevenshteinMatcher()

	idx, ok := m.Match("Fnatic", []string{"fnatic", "NAVI"})
	if !ok || idx != 0 {
		t.Errorf("Match = %d, %v; want 0, true", idx, ok)
	}

	if _, ok := m.Match("Cloud9", []string{"Sentinels", "100 Thieves"}); ok {
		t.Errorf("distant names should not match")
	}

	// Closest candidate wins even when several are within range.
	idx, ok = m.Match("navi", []string{"nav", "navi"})
	if !ok || idx != 1 {
		t.Errorf("Match = %d, %v; want the exact candidate 1", idx, ok)
	}
}
