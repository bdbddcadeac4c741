// Package thumbnail extracts a representative still frame from a video.
package thumbnail

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/job"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// PickTimestamp resolves the extraction point. A negative requested value
// selects the default fraction into the video; any point at or past the end
// is pulled back to the last frame.
func PickTimestamp(requested, duration, frameRate float64) float64 {
	ts := requested
	if ts < 0 {
		ts = duration * config.ThumbnailFraction
	}
	framePeriod := 1.0 / frameRate
	if frameRate <= 0 {
		framePeriod = 1.0 / float64(config.DefaultFrameRate)
	}
	if ts > duration-framePeriod {
		ts = duration - framePeriod
	}
	if ts < 0 {
		ts = 0
	}
	return ts
}

// OutputPath derives the destination when none is given: <name>_thumb.jpg
// next to the input.
func OutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + "_thumb.jpg"
}

// Extract saves one frame of the input as an image and returns its path.
func Extract(proc *ffwrap.Processor, opts config.ThumbnailOptions) (string, error) {
	meta, err := proc.GetVideoMetadata(opts.InputPath)
	if err != nil {
		return "", err
	}

	ts := PickTimestamp(opts.Timestamp, meta.Duration, meta.FrameRate)
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = OutputPath(opts.InputPath)
	}

	if opts.Verbose {
		log.Printf("thumbnail %s at %.3fs -> %s", opts.InputPath, ts, outputPath)
	}

	scratch, err := job.NewScratch()
	if err != nil {
		return "", err
	}
	defer scratch.Cleanup()
	ext := filepath.Ext(outputPath)
	if ext == "" {
		ext = ".jpg"
	}
	tmpPath := scratch.Path("thumb" + ext)

	stream := ffmpeg.Input(opts.InputPath, ffmpeg.KwArgs{"ss": ffwrap.FormatSeconds(ts)}).
		Output(tmpPath, ffmpeg.KwArgs{"frames:v": 1, "q:v": 2})
	if err := proc.Run("thumbnail", stream, tmpPath); err != nil {
		return "", err
	}
	if err := job.MoveIntoPlace(tmpPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
