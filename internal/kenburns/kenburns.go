// Package kenburns animates a still image with a slow zoom, optionally timed
// to a narration track.
package kenburns

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/job"
	"github.com/scenecast/scenecast/internal/mederr"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// The zoom always lands on the same final magnification; the per-frame
// increment is derived from the clip length so longer clips zoom slower.
const finalZoom = 1.2

// ClipDuration decides the clip length: the audio track's duration when one
// is supplied, the requested duration otherwise.
func ClipDuration(requested, audioDuration float64, hasAudio bool) float64 {
	if hasAudio {
		return audioDuration
	}
	return requested
}

// Generate renders the pan/zoom clip and returns the output path.
func Generate(proc *ffwrap.Processor, opts config.KenBurnsOptions) (string, error) {
	preset, err := ffwrap.GetPreset(opts.Preset)
	if err != nil {
		return "", err
	}

	duration := opts.Duration
	if opts.AudioPath != "" {
		audioDuration, err := proc.GetAudioDuration(opts.AudioPath)
		if err != nil {
			return "", err
		}
		duration = ClipDuration(duration, audioDuration, true)
	}
	if duration <= 0 {
		return "", mederr.Configf("clip duration must be positive, got %.3f", duration)
	}

	totalFrames := int(math.Round(duration * float64(preset.FrameRate)))
	if totalFrames < 1 {
		totalFrames = 1
	}
	increment := (finalZoom - 1.0) / float64(totalFrames)

	outputPath := ffwrap.EnsureExtension(opts.OutputPath, preset.FileExtension)
	if opts.Verbose {
		log.Printf("kenburns %s: %.2fs (%d frames) -> %s",
			opts.ImagePath, duration, totalFrames, outputPath)
	}

	scratch, err := job.NewScratch()
	if err != nil {
		return "", err
	}
	defer scratch.Cleanup()
	tmpPath := scratch.Path("kenburns" + preset.FileExtension)

	// Pre-upscaling keeps zoompan's subpixel sampling from jittering.
	filters := []string{
		"scale=iw*2:ih*2",
		fmt.Sprintf("zoompan=z='min(zoom+%.6f,%.3f)':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:s=%dx%d:fps=%d",
			increment, finalZoom, totalFrames, preset.Width, preset.Height, preset.FrameRate),
		fmt.Sprintf("format=%s", preset.PixelFormat),
	}

	kwargs := preset.VideoArgs()
	kwargs["vf"] = strings.Join(filters, ",")
	kwargs["t"] = ffwrap.FormatSeconds(duration)

	video := ffmpeg.Input(opts.ImagePath)

	var stream *ffmpeg.Stream
	if opts.AudioPath != "" {
		delete(kwargs, "an")
		kwargs["c:a"] = preset.AudioCodec
		kwargs["shortest"] = ""
		audio := ffmpeg.Input(opts.AudioPath)
		stream = ffmpeg.Output([]*ffmpeg.Stream{video, audio}, tmpPath, kwargs)
	} else {
		stream = video.Output(tmpPath, kwargs)
	}
	if err := proc.Run("kenburns", stream, tmpPath); err != nil {
		return "", err
	}
	if err := job.MoveIntoPlace(tmpPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
