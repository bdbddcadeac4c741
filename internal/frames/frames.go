// Package frames encodes a numbered still-frame sequence into a video clip.
package frames

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/job"
	"github.com/scenecast/scenecast/internal/mederr"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var indexSpecRe = regexp.MustCompile(`%(0\d+)?d`)

// Sequence describes the frame files matched by a printf-style pattern.
type Sequence struct {
	Pattern    string
	StartIndex int
	Count      int
}

// Scan resolves a pattern like frames/frame_%06d.png against the filesystem
// and returns the matched sequence. The indices must be contiguous; the
// first gap is reported as MissingFrameError.
func Scan(pattern string) (*Sequence, error) {
	loc := indexSpecRe.FindStringIndex(pattern)
	if loc == nil {
		return nil, mederr.Configf("pattern %q has no frame-number placeholder (expected %%d or %%0Nd)", pattern)
	}
	prefix, suffix := pattern[:loc[0]], pattern[loc[1]:]
	dir := filepath.Dir(prefix)
	namePrefix := filepath.Base(prefix)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read frame directory %s", dir)
	}

	var indices []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, filepath.Base(suffix)) {
			continue
		}
		digits := strings.TrimSuffix(strings.TrimPrefix(name, namePrefix), filepath.Base(suffix))
		idx, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		indices = append(indices, idx)
	}
	if len(indices) == 0 {
		return nil, mederr.Configf("no frames match pattern %q", pattern)
	}

	sort.Ints(indices)
	if err := checkContiguous(indices); err != nil {
		return nil, err
	}
	return &Sequence{Pattern: pattern, StartIndex: indices[0], Count: len(indices)}, nil
}

// checkContiguous cites the first missing index in a sorted index list.
func checkContiguous(sorted []int) error {
	for i, idx := range sorted {
		expected := sorted[0] + i
		if idx != expected {
			return &mederr.MissingFrameError{Index: expected}
		}
	}
	return nil
}

// Encode turns the frame sequence into a clip using the named preset. The
// sequence is validated in full before any encoding starts.
func Encode(proc *ffwrap.Processor, opts config.FrameEncodeOptions) (string, error) {
	preset, err := ffwrap.GetPreset(opts.Preset)
	if err != nil {
		return "", err
	}

	seq, err := Scan(opts.Pattern)
	if err != nil {
		return "", err
	}

	outputPath := ffwrap.EnsureExtension(opts.OutputPath, preset.FileExtension)
	if opts.Verbose {
		log.Printf("encoding %d frames (start %d) -> %s", seq.Count, seq.StartIndex, outputPath)
	}

	scratch, err := job.NewScratch()
	if err != nil {
		return "", err
	}
	defer scratch.Cleanup()
	tmpPath := scratch.Path("frames" + preset.FileExtension)

	kwargs := preset.VideoArgs()
	kwargs["vf"] = fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		preset.Width, preset.Height, preset.Width, preset.Height)

	stream := ffmpeg.Input(seq.Pattern, ffmpeg.KwArgs{
		"f":            "image2",
		"framerate":    preset.FrameRate,
		"start_number": seq.StartIndex,
	}).Output(tmpPath, kwargs)

	if err := proc.Run("encode-frames", stream, tmpPath); err != nil {
		return "", err
	}
	if err := job.MoveIntoPlace(tmpPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
