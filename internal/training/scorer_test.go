package training

import (
	"testing"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
)

// #region helpers

func baseSnapshot() Snapshot {
	return Snapshot{
		Stats: map[config.Stat]int{
			config.StatSpeed:   400,
			config.StatStamina: 400,
			config.StatPower:   400,
			config.StatGuts:    400,
			config.StatWit:     400,
		},
		Energy: -1,
	}
}

func option(stat config.Stat, gain, support, failure int) Option {
	return Option{Stat: stat, Gain: gain, Support: support, Failure: failure}
}

// #endregion

// #region pre-filters

func TestDecideRestsBelowEnergyThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Energy.Enabled = true

	snap := baseSnapshot()
	snap.Energy = 20

	dec := New(cfg).Decide([]Option{option(config.StatSpeed, 12, 3, 0)}, snap)
	if dec.Train {
		t.Fatalf("trained at %d%% energy: %+v", snap.Energy, dec)
	}
}

func TestDecideNeverPicksCappedStat(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightHeavy

	snap := baseSnapshot()
	snap.Stats[config.StatSpeed] = 1200

	dec := New(cfg).Decide([]Option{
		option(config.StatSpeed, 20, 4, 0),
		option(config.StatStamina, 10, 1, 0),
	}, snap)
	if !dec.Train || dec.Stat != config.StatStamina {
		t.Fatalf("decision = %+v, want stamina (speed is capped)", dec)
	}
}

func TestDecideUnknownFailureIsUnsafe(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightHeavy

	dec := New(cfg).Decide([]Option{
		option(config.StatSpeed, 20, 4, -1),
	}, baseSnapshot())
	if dec.Train {
		t.Fatalf("trained on unreadable failure: %+v", dec)
	}
}

// #endregion

// #region weighted-mode

func TestWeightedPrefersPriorityStat(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightHeavy
	cfg.PriorityStats = []config.Stat{config.StatSpeed, config.StatStamina, config.StatPower, config.StatGuts, config.StatWit}

	dec := New(cfg).Decide([]Option{
		option(config.StatSpeed, 10, 2, 5),
		option(config.StatStamina, 10, 2, 5),
	}, baseSnapshot())
	if !dec.Train || dec.Stat != config.StatSpeed {
		t.Fatalf("decision = %+v, want speed over stamina", dec)
	}
}

func TestWeightedBelowMinBeatsEqualStat(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightLight
	cfg.StatCaps[config.StatGuts] = config.StatCap{Min: 500, Max: 1200}

	snap := baseSnapshot()
	// Guts sits below its minimum cap; stamina does not, and stamina is
	// the higher-priority stat.
	dec := New(cfg).Decide([]Option{
		option(config.StatStamina, 10, 2, 5),
		option(config.StatGuts, 10, 2, 5),
	}, snap)
	if !dec.Train || dec.Stat != config.StatGuts {
		t.Fatalf("decision = %+v, want below-minimum guts", dec)
	}
}

func TestWeightedHalvesLoneWit(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightMedium
	cfg.PriorityWeights = []float64{1, 1, 1, 1, 1}

	dec := New(cfg).Decide([]Option{
		option(config.StatGuts, 10, 1, 5),
		option(config.StatWit, 15, 1, 5),
	}, baseSnapshot())
	if !dec.Train || dec.Stat != config.StatGuts {
		t.Fatalf("decision = %+v, want guts (lone wit is halved)", dec)
	}
}

func TestWeightedLoneWitAllowedWhenOnlyOption(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightHeavy

	dec := New(cfg).Decide([]Option{
		option(config.StatGuts, 10, 1, 90),
		option(config.StatWit, 15, 1, 5),
	}, baseSnapshot())
	if !dec.Train || dec.Stat != config.StatWit {
		t.Fatalf("decision = %+v, want wit as only safe option", dec)
	}
}

// #endregion

// #region most-support-mode

func TestMostSupportPicksHighestSupport(t *testing.T) {
	snap := baseSnapshot()
	snap.FirstPhase = true

	dec := New(config.Default()).Decide([]Option{
		option(config.StatSpeed, 10, 2, 5),
		option(config.StatPower, 10, 4, 5),
	}, snap)
	if !dec.Train || dec.Stat != config.StatPower {
		t.Fatalf("decision = %+v, want power with 4 supports", dec)
	}
}

func TestMostSupportLoneSupportNeedsZeroFailure(t *testing.T) {
	snap := baseSnapshot()
	snap.FirstPhase = true

	s := New(config.Default())
	if dec := s.Decide([]Option{option(config.StatSpeed, 10, 1, 5)}, snap); dec.Train {
		t.Fatalf("lone support trained at 5%% failure: %+v", dec)
	}
	if dec := s.Decide([]Option{option(config.StatSpeed, 10, 1, 0)}, snap); !dec.Train {
		t.Fatal("lone support at 0% failure should train")
	}
}

func TestMostSupportRestsWhenOnlyLoneWitIsSafe(t *testing.T) {
	snap := baseSnapshot()
	snap.FirstPhase = true

	dec := New(config.Default()).Decide([]Option{
		option(config.StatSpeed, 10, 3, 80),
		option(config.StatStamina, 10, 3, 80),
		option(config.StatPower, 10, 3, 80),
		option(config.StatGuts, 10, 3, 80),
		option(config.StatWit, 10, 1, 0),
	}, snap)
	if dec.Train {
		t.Fatalf("decision = %+v, want rest (wit has one support)", dec)
	}
}

func TestMostSupportSafeWitQuorumBeatsRest(t *testing.T) {
	snap := baseSnapshot()
	snap.FirstPhase = true

	dec := New(config.Default()).Decide([]Option{
		option(config.StatSpeed, 10, 3, 80),
		option(config.StatStamina, 10, 3, 80),
		option(config.StatWit, 10, 2, 0),
	}, snap)
	if !dec.Train || dec.Stat != config.StatWit {
		t.Fatalf("decision = %+v, want wit (only safe facility, quorum met)", dec)
	}
}

func TestMostSupportAggressiveWitAtHighEnergy(t *testing.T) {
	cfg := config.Default()
	cfg.Energy.Enabled = true

	snap := baseSnapshot()
	snap.FirstPhase = true
	snap.Energy = 90

	dec := New(cfg).Decide([]Option{
		option(config.StatWit, 10, 1, 0),
	}, snap)
	if !dec.Train || dec.Stat != config.StatWit {
		t.Fatalf("decision = %+v, want wit at high energy", dec)
	}
}

// #endregion

// #region rainbow-mode

func TestRainbowPreferredInLaterPhases(t *testing.T) {
	opts := []Option{
		{Stat: config.StatSpeed, Gain: 25, Support: 4, SameType: 0, Failure: 5},
		{Stat: config.StatGuts, Gain: 10, Support: 2, SameType: 2, Failure: 5},
	}
	dec := New(config.Default()).Decide(opts, baseSnapshot())
	if !dec.Train || dec.Stat != config.StatGuts {
		t.Fatalf("decision = %+v, want rainbow guts", dec)
	}
}

func TestRainbowIgnoresUnsafeFacilities(t *testing.T) {
	opts := []Option{
		{Stat: config.StatGuts, Gain: 10, Support: 2, SameType: 2, Failure: 90},
		{Stat: config.StatSpeed, Gain: 12, Support: 3, SameType: 0, Failure: 5},
	}
	dec := New(config.Default()).Decide(opts, baseSnapshot())
	if !dec.Train || dec.Stat != config.StatSpeed {
		t.Fatalf("decision = %+v, want most-support speed (rainbow unsafe)", dec)
	}
}

// #endregion

// #region mode-selection

func TestWeightingOverridesFirstPhase(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightHeavy

	snap := baseSnapshot()
	snap.FirstPhase = true

	// Stamina has more supports, but speed wins on weight alone:
	// 10 × 1.5 × 1.667 × 1.1 = 27.5 over 10 × 1.2 × 1.667 × 1.3 = 26.0.
	dec := New(cfg).Decide([]Option{
		option(config.StatSpeed, 10, 1, 5),
		option(config.StatStamina, 10, 3, 5),
	}, snap)
	if !dec.Train || dec.Stat != config.StatSpeed {
		t.Fatalf("decision = %+v, want weighted speed in first phase", dec)
	}
}

func TestWeightingPreemptsRainbow(t *testing.T) {
	cfg := config.Default()
	cfg.PriorityWeight = config.WeightHeavy

	dec := New(cfg).Decide([]Option{
		{Stat: config.StatSpeed, Gain: 25, Support: 4, SameType: 0, Failure: 5},
		{Stat: config.StatGuts, Gain: 10, Support: 2, SameType: 2, Failure: 5},
	}, baseSnapshot())
	if !dec.Train || dec.Stat != config.StatSpeed {
		t.Fatalf("decision = %+v, want weighted speed over rainbow guts", dec)
	}
}

// #endregion
