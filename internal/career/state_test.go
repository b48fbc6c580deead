package career

import (
	"testing"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
)

// #region parsing

func TestParseTurn(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		turn    int
		raceDay bool
	}{
		{"plain number", "23", 23, false},
		{"label noise", "Turn 23 ", 23, false},
		{"race day", "Race Day", -1, true},
		{"race day lowercase", "race day", -1, true},
		{"unreadable", "??", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn, raceDay := parseTurn(tt.in)
			if turn != tt.turn || raceDay != tt.raceDay {
				t.Errorf("parseTurn(%q) = %d, %v; want %d, %v", tt.in, turn, raceDay, tt.turn, tt.raceDay)
			}
		})
	}
}

func TestParseMood(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GREAT", "GREAT"},
		{"great", "GREAT"},
		{" NORMAL ", "NORMAL"},
		{"N0RMAL", "NORMAL"}, // zero misread for O
		{"", ""},
		{"garbage text", ""},
	}
	for _, tt := range tests {
		if got := parseMood(tt.in); got != tt.want {
			t.Errorf("parseMood(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"52/100", 52},
		{"100/100", 100},
		{"7", 7},
		{"", -1},
		{"999", -1},
	}
	for _, tt := range tests {
		if got := parsePercent(tt.in); got != tt.want {
			t.Errorf("parsePercent(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFailure(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Failure 24%", 24},
		{"failure: 0%", 0},
		{"FAIL 8", 8},
		{"no readout here", -1},
		{"Failure ???", -1},
	}
	for _, tt := range tests {
		if got := parseFailure(tt.in); got != tt.want {
			t.Errorf("parseFailure(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCleanLine(t *testing.T) {
	if got := cleanLine("Classic  Year!! Early   Jun*"); got != "Classic Year Early Jun" {
		t.Errorf("cleanLine = %q", got)
	}
}

// #endregion

// #region phases

func TestRunStatePhases(t *testing.T) {
	tests := []struct {
		year   string
		first  bool
		preDeb bool
		summer bool
	}{
		{"Junior Year Pre-Debut", true, true, false},
		{"Junior Year Early Nov", true, false, false},
		{"Classic Year Late Jul", false, false, true},
		{"Senior Year Early Aug", false, false, true},
		{"Classic Year Early Jun", false, false, false},
	}
	for _, tt := range tests {
		st := RunState{Year: tt.year}
		if st.FirstPhase() != tt.first {
			t.Errorf("%q FirstPhase = %v", tt.year, st.FirstPhase())
		}
		if st.PreDebut() != tt.preDeb {
			t.Errorf("%q PreDebut = %v", tt.year, st.PreDebut())
		}
		if st.SummerBreak() != tt.summer {
			t.Errorf("%q SummerBreak = %v", tt.year, st.SummerBreak())
		}
	}
}

func TestMoodBelow(t *testing.T) {
	st := RunState{Mood: "BAD"}
	if !st.MoodBelow("NORMAL") {
		t.Error("BAD should be below NORMAL")
	}
	if st.MoodBelow("AWFUL") {
		t.Error("BAD is not below AWFUL")
	}
	unknown := RunState{Mood: ""}
	if unknown.MoodBelow("NORMAL") {
		t.Error("unreadable mood must not trigger recreation")
	}
}

func TestCriteriaMet(t *testing.T) {
	if !(RunState{Criteria: "Goals Achieved"}).CriteriaMet() {
		t.Error("achieved text not recognized")
	}
	if (RunState{Criteria: "Place 3rd or better"}).CriteriaMet() {
		t.Error("unmet criteria recognized as met")
	}
}

// #endregion

// #region snapshot

func TestSnapshotConversion(t *testing.T) {
	st := RunState{
		Year:   "Classic Year Early Jun",
		Turn:   5,
		Mood:   "GOOD",
		Energy: 60,
		Stats:  map[config.Stat]int{config.StatSpeed: 612},
	}
	snap := st.Snapshot()
	if snap.Stats["spd"] != 612 || snap.Mood != "GOOD" || snap.Turn != 5 {
		t.Errorf("snapshot = %+v", snap)
	}
}

// #endregion
