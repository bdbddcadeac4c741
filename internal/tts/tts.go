// Package tts is the boundary to the narration-synthesis collaborator. The
// production implementation shells out to a text-to-speech CLI; tests supply
// their own Synthesizer.
package tts

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/mederr"
)

// Result describes one synthesized narration clip.
type Result struct {
	AudioPath       string
	DurationSeconds float64
}

// Synthesizer converts text to a narration audio file at outPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language, outPath string) (Result, error)
}

// DurationProber reports the duration of a produced audio file.
type DurationProber interface {
	GetAudioDuration(path string) (float64, error)
}

// CommandSynthesizer invokes an external text-to-speech command. The default
// binary is gtts-cli; any tool accepting --lang/--output works.
type CommandSynthesizer struct {
	Binary  string
	Prober  DurationProber
	Verbose bool
}

// NewCommandSynthesizer builds a synthesizer around the given binary. An
// empty binary name selects gtts-cli.
func NewCommandSynthesizer(binary string, prober DurationProber, verbose bool) *CommandSynthesizer {
	if binary == "" {
		binary = "gtts-cli"
	}
	return &CommandSynthesizer{Binary: binary, Prober: prober, Verbose: verbose}
}

// Synthesize runs the TTS command and probes the produced file's duration.
// Cancellation and deadline come from ctx; on timeout the partial file is
// removed.
func (s *CommandSynthesizer) Synthesize(ctx context.Context, text, language, outPath string) (Result, error) {
	args := []string{"--lang", language, "--output", outPath, text}
	cmd := exec.CommandContext(ctx, s.Binary, args...)
	var diag bytes.Buffer
	cmd.Stdout = &diag
	cmd.Stderr = &diag

	if s.Verbose {
		log.Printf("tts: %s (%d chars, lang=%s)", s.Binary, len(text), language)
	}

	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		if ctx.Err() == context.DeadlineExceeded {
			return Result{}, mederr.ExternalProcessTimeout("synthesize", err)
		}
		return Result{}, errors.Wrapf(err, "tts command failed: %s", diag.String())
	}

	duration, err := s.Prober.GetAudioDuration(outPath)
	if err != nil {
		os.Remove(outPath)
		return Result{}, errors.Wrap(err, "probe synthesized audio")
	}
	return Result{AudioPath: outPath, DurationSeconds: duration}, nil
}

// SynthesizeWithRetry retries transient synthesis failures a bounded number
// of times before surfacing SynthesisUnavailable. Timeouts are not retried.
func SynthesizeWithRetry(ctx context.Context, s Synthesizer, text, language, outPath string) (Result, error) {
	var lastErr error
	for attempt := 0; attempt <= config.SynthesisRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Result{}, mederr.ExternalProcessTimeout("synthesize", ctx.Err())
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		res, err := s.Synthesize(ctx, text, language, outPath)
		if err == nil {
			return res, nil
		}
		var procErr *mederr.ProcessError
		if errors.As(err, &procErr) && procErr.Kind == mederr.KindTimeout {
			return Result{}, err
		}
		lastErr = err
	}
	return Result{}, mederr.SynthesisUnavailable("synthesize", lastErr)
}
