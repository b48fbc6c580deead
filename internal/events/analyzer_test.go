package events

import (
	"testing"

	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
)

// #region option-scoring

func TestAnalyzeOptions(t *testing.T) {
	opts := func(texts ...string) []knowledge.Option {
		out := make([]knowledge.Option, len(texts))
		for i, s := range texts {
			out[i] = knowledge.Option{Text: s}
		}
		return out
	}

	tests := []struct {
		name string
		in   []knowledge.Option
		want int
		ok   bool
	}{
		{
			name: "skill hint beats plain stat",
			in:   opts("Speed +10", "Get a skill hint"),
			want: 2,
			ok:   true,
		},
		{
			name: "negative outcome avoided",
			in:   opts("Energy +10 but you get tired", "Energy +10"),
			want: 2,
			ok:   true,
		},
		{
			name: "tie goes to earliest",
			in:   opts("Speed +10", "Power +10"),
			want: 1,
			ok:   true,
		},
		{
			name: "single option cannot discriminate",
			in:   opts("Energy +10"),
			want: 0,
			ok:   false,
		},
		{
			name: "no options",
			in:   nil,
			want: 0,
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AnalyzeOptions(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("AnalyzeOptions = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestScoreOptionUsesDeclaredEffects(t *testing.T) {
	plain := knowledge.Option{Text: "Take it easy"}
	boosted := knowledge.Option{Text: "Take it easy", Effects: map[string]int{"sta": 10, "spd": 5}}
	penalized := knowledge.Option{Text: "Take it easy", Effects: map[string]int{"sta": -10}}

	if scoreOption(boosted) <= scoreOption(plain) {
		t.Error("positive effects should raise the score")
	}
	if scoreOption(penalized) >= scoreOption(plain) {
		t.Error("negative effects should lower the score")
	}
}

// #endregion
