package timeline

import (
	"math"
	"strings"
	"testing"
)

func TestEstimateDurationAudioAuthoritative(t *testing.T) {
	got := EstimateDuration("ignored text here", EstimateParams{
		AudioDuration:   3.37,
		MinSceneSeconds: 2.5,
		WordsPerMinute:  160,
		FrameRate:       30,
	})
	if got < 3.37 {
		t.Errorf("duration %.4f shorter than narration audio", got)
	}
	// 3.37s at 30 fps rounds up to 102 frames.
	if want := 102.0 / 30.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("got %.6f, want %.6f", got, want)
	}
}

func TestEstimateDurationReadingSpeed(t *testing.T) {
	// 80 words at 160 wpm is 30 seconds.
	text := strings.TrimSpace(strings.Repeat("word ", 80))
	got := EstimateDuration(text, EstimateParams{
		MinSceneSeconds: 2.5,
		WordsPerMinute:  160,
		FrameRate:       30,
	})
	if math.Abs(got-30.0) > 1e-9 {
		t.Errorf("got %.4f, want 30", got)
	}
}

func TestEstimateDurationFloor(t *testing.T) {
	got := EstimateDuration("hi", EstimateParams{
		MinSceneSeconds: 2.5,
		WordsPerMinute:  160,
		FrameRate:       30,
	})
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("got %.4f, want the 2.5 floor", got)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		seconds  float64
		fps      int
		up, down float64
	}{
		{2.5, 30, 2.5, 2.5},
		{3.37, 30, 102.0 / 30.0, 101.0 / 30.0},
		{0.4, 30, 12.0 / 30.0, 12.0 / 30.0},
		{1.0, 24, 1.0, 1.0},
	}
	for _, tt := range tests {
		if got := QuantizeUp(tt.seconds, tt.fps); math.Abs(got-tt.up) > 1e-9 {
			t.Errorf("QuantizeUp(%.4f, %d) = %.6f, want %.6f", tt.seconds, tt.fps, got, tt.up)
		}
		if got := QuantizeDown(tt.seconds, tt.fps); math.Abs(got-tt.down) > 1e-9 {
			t.Errorf("QuantizeDown(%.4f, %d) = %.6f, want %.6f", tt.seconds, tt.fps, got, tt.down)
		}
	}
}

func TestClampFades(t *testing.T) {
	s := Scene{DurationSeconds: 1.0, FadeInSeconds: 0.8, FadeOutSeconds: 0.8}
	s.ClampFades()
	if total := s.FadeInSeconds + s.FadeOutSeconds; total > s.DurationSeconds+1e-9 {
		t.Errorf("fades %.4f still exceed duration %.4f", total, s.DurationSeconds)
	}
	if math.Abs(s.FadeInSeconds-s.FadeOutSeconds) > 1e-9 {
		t.Errorf("symmetric fades should stay symmetric: %.4f vs %.4f", s.FadeInSeconds, s.FadeOutSeconds)
	}
}
