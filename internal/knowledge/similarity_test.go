package knowledge

import "testing"

// #region normalize

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "New Year's Resolutions", "new year s resolutions"},
		{"punctuation collapsed", "Dance  Lesson!!", "dance lesson"},
		{"digits kept", "G1 Race Day 2", "g1 race day 2"},
		{"only symbols", "!?—★", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// #endregion

// #region similarity

func TestSimilarityReflexive(t *testing.T) {
	titles := []string{
		"New Year's Resolutions",
		"Dance Lesson",
		"Extra Training",
	}
	for _, s := range titles {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarityPunctuationVariants(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"New Year's Resolutions", "new years resolutions"},
		{"Dance Lesson!", "Dance Lesson"},
		{"At Summer Camp (Year 2)", "at summer camp year 2"},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got < LearnedMatchThreshold {
			t.Errorf("Similarity(%q, %q) = %v, want >= %v", tt.a, tt.b, got, LearnedMatchThreshold)
		}
	}
}

func TestSimilarityUnrelated(t *testing.T) {
	if got := Similarity("Dance Lesson", "Acupuncture"); got >= LearnedMatchThreshold {
		t.Errorf("unrelated titles scored %v, want < %v", got, LearnedMatchThreshold)
	}
}

// #endregion
