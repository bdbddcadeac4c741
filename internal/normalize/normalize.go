// Package normalize rewrites arbitrary input video into a predictable form:
// constant frame rate, limited-range yuv420p, BT.709 tagging, faststart.
package normalize

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/job"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// OutputPath derives the destination for a normalized file when none is
// given: <name>_fixed.mp4 next to the input.
func OutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + "_fixed.mp4"
}

// Normalize re-encodes the input to a constant frame rate with normalized
// color handling. It returns the output path. Inputs the probe cannot read
// fail with UnreadableMediaError before any encode starts.
func Normalize(proc *ffwrap.Processor, opts config.FixVideoOptions) (string, error) {
	meta, err := proc.GetVideoMetadata(opts.InputPath)
	if err != nil {
		return "", err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = OutputPath(opts.InputPath)
	}

	frameRate := opts.FrameRate
	if frameRate <= 0 {
		frameRate = config.DefaultFrameRate
	}

	if opts.Verbose {
		log.Printf("normalizing %s (%.2fs, %s, %.3f fps) -> %s at %d fps",
			opts.InputPath, meta.Duration, meta.Codec, meta.FrameRate, outputPath, frameRate)
	}

	filters := []string{
		fmt.Sprintf("fps=%d", frameRate),
		"scale=out_range=limited",
		"format=yuv420p",
	}

	kwargs := ffmpeg.KwArgs{
		"vf":              strings.Join(filters, ","),
		"fps_mode":        "cfr",
		"c:v":             "libx264",
		"preset":          "medium",
		"colorspace":      "bt709",
		"color_primaries": "bt709",
		"color_trc":       "bt709",
		"movflags":        "+faststart",
		"threads":         ffwrap.GetOptimalThreadCount(),
	}
	if meta.HasAudio {
		kwargs["c:a"] = "aac"
	} else {
		kwargs["an"] = ""
	}

	scratch, err := job.NewScratch()
	if err != nil {
		return "", err
	}
	defer scratch.Cleanup()
	ext := filepath.Ext(outputPath)
	if ext == "" {
		ext = ".mp4"
	}
	tmpPath := scratch.Path("fixed" + ext)

	stream := ffmpeg.Input(opts.InputPath).Output(tmpPath, kwargs)
	if err := proc.Run("fix-video", stream, tmpPath); err != nil {
		return "", err
	}
	if err := job.MoveIntoPlace(tmpPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
