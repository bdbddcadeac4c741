// Package timeline derives per-scene durations from narration and lays
// scenes out on a single continuous timeline with transition overlaps. All
// values are quantized to the output frame grid so downstream cut points and
// cross-fade offsets stay frame-accurate.
package timeline

import (
	"math"
	"strings"
)

// Scene is one narrated segment of the output video. Immutable once rendered.
type Scene struct {
	Index           int
	Text            string
	BackgroundRef   string // asset path; empty = theme gradient
	NarrationPath   string // synthesized or supplied audio; empty = silent
	DurationSeconds float64
	FadeInSeconds   float64
	FadeOutSeconds  float64
}

// EstimateParams control duration estimation for a single scene.
type EstimateParams struct {
	AudioDuration   float64 // seconds; 0 = no narration audio
	MinSceneSeconds float64
	WordsPerMinute  int
	FrameRate       int
}

// EstimateDuration computes a scene's display duration. Narration audio is
// authoritative so video and speech never drift; without audio the scene gets
// a reading-speed estimate. Both paths apply the minimum floor and round up
// to a whole number of frame periods.
func EstimateDuration(text string, p EstimateParams) float64 {
	var d float64
	if p.AudioDuration > 0 {
		d = p.AudioDuration
	} else {
		words := len(strings.Fields(text))
		d = float64(words) / float64(p.WordsPerMinute) * 60.0
	}
	if d < p.MinSceneSeconds {
		d = p.MinSceneSeconds
	}
	return QuantizeUp(d, p.FrameRate)
}

// QuantizeUp rounds seconds up to the next whole frame period.
func QuantizeUp(seconds float64, fps int) float64 {
	frames := math.Ceil(seconds*float64(fps) - 1e-9)
	return frames / float64(fps)
}

// QuantizeDown rounds seconds down to a whole frame period.
func QuantizeDown(seconds float64, fps int) float64 {
	frames := math.Floor(seconds*float64(fps) + 1e-9)
	return frames / float64(fps)
}

// ClampFades scales a scene's fade windows down so they fit inside its
// duration.
func (s *Scene) ClampFades() {
	total := s.FadeInSeconds + s.FadeOutSeconds
	if total <= s.DurationSeconds || total == 0 {
		return
	}
	scale := s.DurationSeconds / total
	s.FadeInSeconds *= scale
	s.FadeOutSeconds *= scale
}
