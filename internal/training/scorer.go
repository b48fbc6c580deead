// Package training scores the five training facilities and decides
// whether to train or rest for the turn.
package training

import (
	"fmt"
	"log"
	"sort"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
)

// #region types

// Option is one facility's observed state for the current turn.
type Option struct {
	Stat     config.Stat
	Gain     int // primary stat gain; 0 means unreadable
	Support  int // support cards present on the facility
	SameType int // supports matching the facility's own type
	Failure  int // failure percent; -1 means unreadable
}

// Snapshot is the run context the scorer needs beyond the facilities.
type Snapshot struct {
	Stats      map[config.Stat]int
	Energy     int // percent; -1 means unknown
	FirstPhase bool
}

// Decision is the scorer's verdict for the turn.
type Decision struct {
	Train  bool
	Stat   config.Stat
	Score  float64
	Reason string
}

func rest(reason string) Decision {
	return Decision{Train: false, Reason: reason}
}

// #endregion

// #region scorer

const (
	belowMinBoost  = 2.0
	supportFactor  = 0.1
	witLonePenalty = 0.5
)

// Scorer applies the configured weighting rules to a turn's options.
type Scorer struct {
	cfg config.Config
}

// New builds a scorer over a config snapshot. Scorers are cheap; make a
// fresh one each tick so config reloads take effect.
func New(cfg config.Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Decide picks a facility or rest. Order of concerns: energy floor,
// stat caps, then weighted scoring whenever a priority weight is
// configured; most-support and rainbow run only with weighting disabled.
func (s *Scorer) Decide(opts []Option, snap Snapshot) Decision {
	if s.cfg.Energy.Enabled && snap.Energy >= 0 && snap.Energy < s.cfg.Energy.SkipTraining {
		return rest(fmt.Sprintf("energy %d%% below training threshold %d%%", snap.Energy, s.cfg.Energy.SkipTraining))
	}

	candidates := s.uncapped(opts, snap)
	if len(candidates) == 0 {
		return rest("all stats at cap")
	}

	var dec Decision
	switch {
	case s.cfg.PriorityWeight != config.WeightDisabled:
		dec = s.weighted(candidates, snap)
	case snap.FirstPhase:
		dec = s.mostSupport(candidates, snap)
	default:
		if rb, ok := s.rainbow(candidates); ok {
			dec = rb
		} else {
			dec = s.mostSupport(candidates, snap)
		}
	}

	if dec.Train {
		log.Printf("[TRAIN] %s: %s (score %.1f)", dec.Stat, dec.Reason, dec.Score)
	} else {
		log.Printf("[TRAIN] rest: %s", dec.Reason)
	}
	return dec
}

// #endregion

// #region filters

// safe reports whether the failure reading allows training. An
// unreadable percentage is treated as unsafe.
func (s *Scorer) safe(opt Option) bool {
	return opt.Failure >= 0 && opt.Failure <= s.cfg.MaxFailure
}

// uncapped drops facilities whose stat already hit its max cap and
// orders the rest by configured priority.
func (s *Scorer) uncapped(opts []Option, snap Snapshot) []Option {
	out := make([]Option, 0, len(opts))
	for _, opt := range opts {
		cap := s.cfg.StatCaps[opt.Stat]
		if cap.Max > 0 && snap.Stats[opt.Stat] >= cap.Max {
			continue
		}
		out = append(out, opt)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.cfg.PriorityIndex(out[i].Stat) < s.cfg.PriorityIndex(out[j].Stat)
	})
	return out
}

// #endregion

// #region weighted

// weighted scores each safe facility as gain × weight × (1 + 0.1×support).
// The weight folds in the priority curve, distance from the max cap, and
// the below-minimum boost.
func (s *Scorer) weighted(opts []Option, snap Snapshot) Decision {
	curve := s.cfg.EffectsList()
	safeCount := 0
	for _, opt := range opts {
		if s.safe(opt) {
			safeCount++
		}
	}

	best := rest("no facility within failure tolerance")
	for _, opt := range opts {
		if !s.safe(opt) {
			continue
		}
		w := curveAt(curve, s.cfg.PriorityIndex(opt.Stat))
		cap := s.cfg.StatCaps[opt.Stat]
		cur := snap.Stats[opt.Stat]
		if cur < cap.Min {
			w *= belowMinBoost
		}
		if cap.Max > cap.Min {
			w *= 1 + float64(cap.Max-cur)/float64(cap.Max-cap.Min)
		}

		gain := opt.Gain
		if gain <= 0 {
			gain = s.cfg.Training.DefaultStatGain
		}
		score := float64(gain) * w * (1 + supportFactor*float64(opt.Support))

		// A near-empty wit facility wastes the turn unless it is the
		// only thing left to do.
		if opt.Stat == config.StatWit && opt.Support < s.cfg.Training.WitMinSupport && safeCount > 1 {
			score *= witLonePenalty
		}

		if !best.Train || score > best.Score {
			best = Decision{
				Train:  true,
				Stat:   opt.Stat,
				Score:  score,
				Reason: fmt.Sprintf("weighted pick, %d supports, %d%% failure", opt.Support, opt.Failure),
			}
		}
	}
	return best
}

func curveAt(curve []float64, idx int) float64 {
	if len(curve) == 0 {
		return 1.0
	}
	if idx >= len(curve) {
		return curve[len(curve)-1]
	}
	return curve[idx]
}

// #endregion

// #region most-support

// mostSupport maximizes support card presence, which drives bond gain in
// the early game. Lone-support facilities only qualify at exactly 0%
// failure, and wit needs a quorum of supports unless energy is too high
// to waste on rest.
func (s *Scorer) mostSupport(opts []Option, snap Snapshot) Decision {
	aggressive := s.cfg.Energy.Enabled && snap.Energy > s.cfg.Energy.NeverRest

	best := rest("no facility within failure tolerance")
	bestSupport := -1
	for _, opt := range opts {
		if !s.safe(opt) {
			continue
		}
		if opt.Support <= s.cfg.Training.LowSupportFloor && opt.Failure != 0 {
			continue
		}
		if opt.Stat == config.StatWit && opt.Support < s.cfg.Training.WitMinSupport && !aggressive {
			continue
		}
		if opt.Support > bestSupport {
			bestSupport = opt.Support
			best = Decision{
				Train:  true,
				Stat:   opt.Stat,
				Score:  float64(opt.Support),
				Reason: fmt.Sprintf("most supports (%d), %d%% failure", opt.Support, opt.Failure),
			}
		}
	}
	return best
}

// #endregion

// #region rainbow

// rainbow looks for facilities with a maxed-bond same-type support,
// whose combined gains dwarf everything else in later phases.
func (s *Scorer) rainbow(opts []Option) (Decision, bool) {
	best := Decision{}
	bestCount := 0
	for _, opt := range opts {
		if !s.safe(opt) || opt.SameType <= 0 {
			continue
		}
		if opt.SameType > bestCount {
			bestCount = opt.SameType
			best = Decision{
				Train:  true,
				Stat:   opt.Stat,
				Score:  float64(opt.SameType),
				Reason: fmt.Sprintf("rainbow training (%d same-type), %d%% failure", opt.SameType, opt.Failure),
			}
		}
	}
	return best, best.Train
}

// #endregion
