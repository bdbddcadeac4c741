// Package audio adjusts narration tempo and assembles the master narration
// track.
package audio

import (
	"fmt"
	"math"

	"github.com/scenecast/scenecast/internal/config"
	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	"github.com/scenecast/scenecast/internal/mederr"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Factors this close to 1.0 skip adjustment entirely.
const neutralTempoEpsilon = 1e-3

// ValidateTempoFactor rejects factors outside the supported band.
// Out-of-range factors fail instead of being clamped.
func ValidateTempoFactor(factor float64) error {
	if factor < config.TempoFactorMin || factor > config.TempoFactorMax {
		return &mederr.UnsupportedTempoFactorError{
			Factor: factor,
			Min:    config.TempoFactorMin,
			Max:    config.TempoFactorMax,
		}
	}
	return nil
}

// IsNeutral reports whether the factor is close enough to 1.0 that
// adjustment can be skipped.
func IsNeutral(factor float64) bool {
	return math.Abs(factor-1.0) < neutralTempoEpsilon
}

// ExpectedAdjustedDuration is the contract for Adjust's output length:
// inputDuration / factor, within one frame period of tolerance.
func ExpectedAdjustedDuration(inputDuration, factor float64) float64 {
	return inputDuration / factor
}

// Adjust time-stretches narration audio by factor while holding pitch
// constant. factor > 1 speeds speech up, factor < 1 slows it down.
func Adjust(proc *ffwrap.Processor, inputPath, outputPath string, factor float64) error {
	if err := ValidateTempoFactor(factor); err != nil {
		return err
	}
	stream := ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"filter:a": fmt.Sprintf("atempo=%.4f", factor),
			"vn":       "",
		})
	return proc.Run("tempo-adjust", stream, outputPath)
}
