package domain

import "testing"

func TestCEFRForDifficulty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		difficulty int
		want       string
	}{
		{0, ""},
		{1, "A1"},
		{3, "B1"},
		{4, "B2"},
		{6, "C2"},
		{7, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := CEFRForDifficulty(tt.difficulty); got != tt.want {
			t.Errorf("CEFRForDifficulty(%d) = %q, want %q", tt.difficulty, got, tt.want)
		}
	}
}

func TestDifficultyBands_Label(t *testing.T) {
	t.Parallel()

	bands := DifficultyBands{
		Easy:   []string{"A1", "A2", "B1"},
		Medium: []string{"B2", "C1"},
		Hard:   []string{"C2"},
	}

	tests := []struct {
		difficulty int
		wantCEFR   string
		wantBand   Band
	}{
		{2, "A2", BandEasy},
		{4, "B2", BandMedium},
		{5, "C1", BandMedium},
		{6, "C2", BandHard},
		{0, "", ""},
	}
	for _, tt := range tests {
		w := WordAnnotation{Difficulty: tt.difficulty}
		bands.Label(&w)
		if w.CEFR != tt.wantCEFR || w.Band != tt.wantBand {
			t.Errorf("difficulty %d: got (%q, %q), want (%q, %q)",
				tt.difficulty, w.CEFR, w.Band, tt.wantCEFR, tt.wantBand)
		}
	}
}

func TestLevelRange(t *testing.T) {
	t.Parallel()

	if got := LevelRange(3, 4); got != "B1-B2" {
		t.Errorf("LevelRange(3,4) = %q", got)
	}
	if got := LevelRange(5, 5); got != "C1" {
		t.Errorf("LevelRange(5,5) = %q", got)
	}
	if got := LevelRange(0, 4); got != "" {
		t.Errorf("LevelRange(0,4) = %q", got)
	}
}

func TestBand_IsValid(t *testing.T) {
	t.Parallel()

	for _, b := range []Band{BandEasy, BandMedium, BandHard} {
		if !b.IsValid() {
			t.Errorf("%q should be valid", b)
		}
	}
	if Band("extreme").IsValid() {
		t.Error("unknown band reported valid")
	}
	if !IsCEFRLevel(" b2 ") || IsCEFRLevel("D1") {
		t.Error("IsCEFRLevel mismatch")
	}
}
