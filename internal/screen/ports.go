package screen

import "time"

// #region perception

// Perception is the read side of the screen: template matching and OCR.
// A miss is a normal negative result, never an error: empty slices and
// ok=false drive the caller's next branch.
type Perception interface {
	// Find returns every match of the template inside region (zero Box =
	// whole screen) at or above the given confidence.
	Find(template string, region Box, confidence float64) []Box

	// ReadText OCRs the region. Returns "" when nothing legible is there.
	ReadText(region Box) string

	// LocateCenter searches for a single template for up to minSearch and
	// returns its center. ok is false on a miss or an invalid position.
	LocateCenter(template string, confidence float64, minSearch time.Duration) (Point, bool)
}

// #endregion

// #region actuation

// Actuation is the write side of the screen: a virtual pointer.
type Actuation interface {
	// MoveTo glides the pointer to p over the given duration.
	MoveTo(p Point, duration time.Duration) error

	// Click clicks count times at p. Rejects invalid coordinates.
	Click(p Point, count int) error

	// Scroll scrolls vertically; negative delta scrolls down.
	Scroll(delta int) error

	// Position returns the pointer's current location.
	Position() Point
}

// #endregion

// #region brightness

// BrightnessReader is implemented by perception backends that can report
// the average brightness of a region, used to tell an enabled (bright)
// button from a disabled (grayed) one.
type BrightnessReader interface {
	Brightness(region Box) (float64, bool)
}

// buttonActiveBrightness is the brightness floor above which a button is
// considered clickable.
const buttonActiveBrightness = 150

// ButtonActive reports whether the button in region looks enabled. When p
// cannot measure brightness the button is assumed active.
func ButtonActive(p Perception, region Box) bool {
	br, ok := p.(BrightnessReader)
	if !ok {
		return true
	}
	v, ok := br.Brightness(region)
	if !ok {
		return true
	}
	return v >= buttonActiveBrightness
}

// #endregion
