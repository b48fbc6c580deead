package screen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// #region bridge

// Bridge talks HTTP to the vision sidecar that does the actual screen
// capture, template matching, OCR, and pointer work. The decision core
// only ever sees the Perception/Actuation contracts; transport failures
// are logged and surfaced as misses so a flaky sidecar degrades into
// "nothing found" instead of killing the tick.
type Bridge struct {
	baseURL string
	client  *http.Client
}

// NewBridge creates a Bridge targeting the sidecar's base URL.
func NewBridge(baseURL string) *Bridge {
	return &Bridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// #endregion

// #region wire-types

type findRequest struct {
	Template   string  `json:"template"`
	Region     *Box    `json:"region,omitempty"`
	Confidence float64 `json:"confidence"`
}

type findResponse struct {
	Boxes []Box `json:"boxes"`
}

type readTextRequest struct {
	Region Box `json:"region"`
}

type readTextResponse struct {
	Text string `json:"text"`
}

type locateRequest struct {
	Template    string  `json:"template"`
	Confidence  float64 `json:"confidence"`
	MinSearchMS int     `json:"min_search_ms"`
}

type locateResponse struct {
	Found bool  `json:"found"`
	Point Point `json:"point"`
}

type moveRequest struct {
	Point      Point `json:"point"`
	DurationMS int   `json:"duration_ms"`
}

type clickRequest struct {
	Point Point `json:"point"`
	Count int   `json:"count"`
}

type scrollRequest struct {
	Delta int `json:"delta"`
}

type pointerResponse struct {
	Point Point `json:"point"`
}

type brightnessRequest struct {
	Region Box `json:"region"`
}

type brightnessResponse struct {
	Brightness float64 `json:"brightness"`
}

// #endregion

// #region perception-impl

// Find implements Perception.
func (b *Bridge) Find(template string, region Box, confidence float64) []Box {
	req := findRequest{Template: template, Confidence: confidence}
	if !region.Empty() {
		r := region
		req.Region = &r
	}
	var resp findResponse
	if err := b.post("/v1/find", req, &resp); err != nil {
		log.Printf("[SCREEN] find %s: %v", template, err)
		return nil
	}
	return resp.Boxes
}

// ReadText implements Perception.
func (b *Bridge) ReadText(region Box) string {
	var resp readTextResponse
	if err := b.post("/v1/read_text", readTextRequest{Region: region}, &resp); err != nil {
		log.Printf("[SCREEN] read_text: %v", err)
		return ""
	}
	return resp.Text
}

// LocateCenter implements Perception.
func (b *Bridge) LocateCenter(template string, confidence float64, minSearch time.Duration) (Point, bool) {
	req := locateRequest{
		Template:    template,
		Confidence:  confidence,
		MinSearchMS: int(minSearch / time.Millisecond),
	}
	var resp locateResponse
	if err := b.post("/v1/locate", req, &resp); err != nil {
		log.Printf("[SCREEN] locate %s: %v", template, err)
		return Point{}, false
	}
	if !resp.Found || !resp.Point.Valid() {
		return Point{}, false
	}
	return resp.Point, true
}

// Brightness implements BrightnessReader.
func (b *Bridge) Brightness(region Box) (float64, bool) {
	var resp brightnessResponse
	if err := b.post("/v1/brightness", brightnessRequest{Region: region}, &resp); err != nil {
		log.Printf("[SCREEN] brightness: %v", err)
		return 0, false
	}
	return resp.Brightness, true
}

// #endregion

// #region actuation-impl

// MoveTo implements Actuation.
func (b *Bridge) MoveTo(p Point, duration time.Duration) error {
	if !p.Valid() {
		return fmt.Errorf("move to invalid position %+v", p)
	}
	return b.post("/v1/move", moveRequest{Point: p, DurationMS: int(duration / time.Millisecond)}, nil)
}

// Click implements Actuation.
func (b *Bridge) Click(p Point, count int) error {
	if !p.Valid() {
		return fmt.Errorf("click at invalid position %+v", p)
	}
	if count < 1 {
		count = 1
	}
	return b.post("/v1/click", clickRequest{Point: p, Count: count}, nil)
}

// Scroll implements Actuation.
func (b *Bridge) Scroll(delta int) error {
	return b.post("/v1/scroll", scrollRequest{Delta: delta}, nil)
}

// Position implements Actuation.
func (b *Bridge) Position() Point {
	var resp pointerResponse
	if err := b.get("/v1/pointer", &resp); err != nil {
		log.Printf("[SCREEN] pointer: %v", err)
		return Point{}
	}
	return resp.Point
}

// #endregion

// #region http

func (b *Bridge) post(path string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	resp, err := b.client.Post(b.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s returned %d: %s", path, resp.StatusCode, string(raw))
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (b *Bridge) get(path string, target any) error {
	resp, err := b.client.Get(b.baseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned %d: %s", path, resp.StatusCode, string(raw))
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// #endregion
