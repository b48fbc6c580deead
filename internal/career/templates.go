package career

import "github.com/HandrianD/umamusume-auto-train/internal/screen"

// #region templates

// Template names resolved by the vision sidecar against its asset set.
const (
	tmplLobbyAnchor   = "tazuna_hint"
	tmplInspiration   = "inspiration_btn"
	tmplNext          = "next_btn"
	tmplCancel        = "cancel_btn"
	tmplRetry         = "retry_btn"
	tmplInfirmary     = "infirmary_btn"
	tmplRaceDay       = "race_day_btn"
	tmplURAFinale     = "ura_finale"
	tmplRecreation    = "recreation_btn"
	tmplTraining      = "training_btn"
	tmplRest          = "rest_btn"
	tmplRestSummer    = "rest_summer_btn"
	tmplRaces         = "races_btn"
	tmplOKButton      = "ok_btn"
	tmplRaceButton    = "race_btn"
	tmplAfterRace     = "after_race_btn"
	tmplViewResults   = "view_results"
	tmplTryAgain      = "try_again_btn"
	tmplMatchTrack    = "match_track"
	tmplG1Badge       = "race_g1"
	tmplSkillsButton  = "skills_btn"
	tmplBackButton    = "back_btn"
	tmplConfirmButton = "confirm_btn"
)

// Facility templates indexed in the same order the stats are trained.
var facilityTemplates = map[string]string{
	"spd":  "train_spd",
	"sta":  "train_sta",
	"pwr":  "train_pwr",
	"guts": "train_guts",
	"wit":  "train_wit",
}

const (
	defaultConf = 0.8
	lobbyConf   = 0.85
)

// #endregion

// #region regions

// Fixed OCR regions at the reference resolution. Exported so fixture
// recorders and the replay harness can script them.
var (
	RegionYear     = screen.Box{X: 255, Y: 35, W: 380, H: 32}
	RegionTurn     = screen.Box{X: 260, Y: 60, W: 110, H: 70}
	RegionMood     = screen.Box{X: 705, Y: 125, W: 130, H: 30}
	RegionCriteria = screen.Box{X: 455, Y: 85, W: 310, H: 30}
	RegionEnergy   = screen.Box{X: 470, Y: 125, W: 230, H: 28}
	RegionFailure  = screen.Box{X: 250, Y: 770, W: 560, H: 55}
	RegionSupports = screen.Box{X: 1630, Y: 100, W: 260, H: 640}
)

// #endregion
