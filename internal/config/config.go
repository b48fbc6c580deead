// Package config owns the bot's JSON configuration surface. The file is
// reloaded whenever it changes on disk; the career loop reads a fresh
// snapshot every tick, so edits made through the web UI take effect on
// the next tick without a restart.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region stats

// Stat identifies one of the five trainable stats.
type Stat string

const (
	StatSpeed   Stat = "spd"
	StatStamina Stat = "sta"
	StatPower   Stat = "pwr"
	StatGuts    Stat = "guts"
	StatWit     Stat = "wit"
)

// Stats lists every trainable stat in canonical order.
var Stats = []Stat{StatSpeed, StatStamina, StatPower, StatGuts, StatWit}

// IsStat reports whether s names a known stat.
func IsStat(s Stat) bool {
	for _, k := range Stats {
		if k == s {
			return true
		}
	}
	return false
}

// #endregion

// #region mood

// MoodList orders the game's mood labels from worst to best.
var MoodList = []string{"AWFUL", "BAD", "NORMAL", "GOOD", "GREAT"}

// MoodIndex returns mood's position in MoodList, or -1 when unrecognized.
func MoodIndex(mood string) int {
	for i, m := range MoodList {
		if m == mood {
			return i
		}
	}
	return -1
}

// #endregion

// #region weight-mode

// WeightMode selects the priority weighting curve for the training scorer.
type WeightMode string

const (
	WeightDisabled WeightMode = "DISABLED"
	WeightLight    WeightMode = "LIGHT"
	WeightMedium   WeightMode = "MEDIUM"
	WeightHeavy    WeightMode = "HEAVY"
)

// #endregion

// #region config-struct

// StatCap bounds one stat. Training a stat at or above Max is pointless;
// a stat below Min gets a priority boost.
type StatCap struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SkillConfig controls the skill purchase advisor.
type SkillConfig struct {
	AutoBuy      bool     `json:"is_auto_buy_skill"`
	PointsCheck  int      `json:"skill_pts_check"`
	WantList     []string `json:"skill_list"`
	MatchRatio   float64  `json:"match_ratio"`
	ScrollPasses int      `json:"scroll_passes"`
}

// EnergyConfig controls energy-aware decisions. When Enabled is false the
// scorer and infirmary logic behave as if energy were unknown.
type EnergyConfig struct {
	Enabled              bool `json:"enabled"`
	NeverRest            int  `json:"never_rest_energy"`
	SkipTraining         int  `json:"skip_training_energy"`
	SkipInfirmaryHealthy bool `json:"skip_infirmary_unless_missing_energy"`
}

// EventConfig controls the event choice resolver.
type EventConfig struct {
	InterventionTimeoutSec int  `json:"user_intervention_timeout"`
	CollectData            bool `json:"collect_data"`
}

// TrainingConfig carries the tuned scorer constants.
type TrainingConfig struct {
	WitMinSupport   int `json:"wit_min_support"`
	LowSupportFloor int `json:"low_support_floor"`
	DefaultStatGain int `json:"default_stat_gain"`
}

// CatalogConfig points at the pre-scraped event data for the configured
// character, support card roster, and scenario.
type CatalogConfig struct {
	CharacterID   string   `json:"character_id"`
	CharacterName string   `json:"character_name"`
	SupportCards  []string `json:"support_cards"`
	Scenario      string   `json:"scenario"`
	Dir           string   `json:"dir"`
}

// Config is the full configuration surface consumed by the core.
type Config struct {
	PriorityStats         []Stat           `json:"priority_stat"`
	MinimumMood           string           `json:"minimum_mood"`
	MaxFailure            int              `json:"maximum_failure"`
	PrioritizeG1          bool             `json:"prioritize_g1_race"`
	CancelConsecutiveRace bool             `json:"cancel_consecutive_race"`
	StatCaps              map[Stat]StatCap `json:"stat_caps"`
	PriorityWeight        WeightMode       `json:"priority_weight"`
	PriorityWeights       []float64        `json:"priority_weights"`
	Skill                 SkillConfig      `json:"skill"`
	Energy                EnergyConfig     `json:"energy_management"`
	Event                 EventConfig      `json:"event_data_collection"`
	Training              TrainingConfig   `json:"training"`
	Catalog               CatalogConfig    `json:"catalog"`

	SidecarURL    string `json:"sidecar_url"`
	ChoiceLogPath string `json:"choice_log_path"`
	HistoryDBPath string `json:"history_db_path"`
	Hotkey        string `json:"hotkey"`
}

// #endregion

// #region defaults

// Default returns a Config with the stock thresholds.
func Default() Config {
	caps := make(map[Stat]StatCap, len(Stats))
	for _, s := range Stats {
		caps[s] = StatCap{Min: 0, Max: 1200}
	}
	return Config{
		PriorityStats:         []Stat{StatSpeed, StatStamina, StatPower, StatGuts, StatWit},
		MinimumMood:           "NORMAL",
		MaxFailure:            15,
		StatCaps:              caps,
		PriorityWeight:        WeightDisabled,
		PriorityWeights:       []float64{1.0, 1.0, 1.0, 1.0, 1.0},
		Skill: SkillConfig{
			PointsCheck:  400,
			MatchRatio:   0.8,
			ScrollPasses: 10,
		},
		Energy: EnergyConfig{
			NeverRest:            70,
			SkipTraining:         30,
			SkipInfirmaryHealthy: true,
		},
		Event: EventConfig{
			InterventionTimeoutSec: 20,
			CollectData:            true,
		},
		Training: TrainingConfig{
			WitMinSupport:   2,
			LowSupportFloor: 1,
			DefaultStatGain: 10,
		},
		Catalog: CatalogConfig{
			Dir: "assets/catalog",
		},
		SidecarURL:    "http://127.0.0.1:8190",
		ChoiceLogPath: "event_data.json",
		HistoryDBPath: "trainer_history.db",
		Hotkey:        "f1",
	}
}

// #endregion

// #region load

// Load reads and normalizes a config file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps and backfills values the rest of the core relies on.
func (c *Config) Normalize() {
	if len(c.PriorityStats) == 0 {
		c.PriorityStats = Default().PriorityStats
	}
	if MoodIndex(c.MinimumMood) < 0 {
		c.MinimumMood = "NORMAL"
	}
	if c.MaxFailure < 0 {
		c.MaxFailure = 0
	}
	if c.MaxFailure > 100 {
		c.MaxFailure = 100
	}
	if c.Event.InterventionTimeoutSec <= 0 {
		c.Event.InterventionTimeoutSec = 20
	}
	if c.Skill.MatchRatio <= 0 || c.Skill.MatchRatio > 1 {
		c.Skill.MatchRatio = 0.8
	}
	if c.Skill.ScrollPasses <= 0 {
		c.Skill.ScrollPasses = 10
	}
	if c.Training.WitMinSupport <= 0 {
		c.Training.WitMinSupport = 2
	}
	if c.Training.DefaultStatGain <= 0 {
		c.Training.DefaultStatGain = 10
	}
	if c.StatCaps == nil {
		c.StatCaps = Default().StatCaps
	}
	for _, s := range Stats {
		if _, ok := c.StatCaps[s]; !ok {
			c.StatCaps[s] = StatCap{Min: 0, Max: 1200}
		}
	}
}

// #endregion

// #region weight-curve

// EffectsList returns the weighting curve for the configured mode, indexed
// by priority position (most important first).
func (c Config) EffectsList() []float64 {
	switch c.PriorityWeight {
	case WeightHeavy:
		return []float64{1.5, 1.2, 1.0, 0.7, 0.4}
	case WeightLight:
		return []float64{1.2, 1.1, 1.0, 0.9, 0.8}
	case WeightMedium:
		if len(c.PriorityWeights) > 0 {
			return c.PriorityWeights
		}
		return []float64{1.0, 1.0, 1.0, 1.0, 1.0}
	default:
		return []float64{1.0, 1.0, 1.0, 1.0, 1.0}
	}
}

// PriorityIndex returns stat's position in the priority list, or a large
// sentinel when the stat is not prioritized at all.
func (c Config) PriorityIndex(stat Stat) int {
	for i, s := range c.PriorityStats {
		if s == stat {
			return i
		}
	}
	return len(Stats) + 1
}

// #endregion
