// Package ffmpeg wraps the external encoding engine. All commands in this
// repository funnel their encode invocations through Processor.Run so that
// diagnostics capture, timeouts and partial-output cleanup behave the same
// everywhere.
package ffmpeg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/mederr"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoMetadata contains metadata about a media file.
type VideoMetadata struct {
	Duration  float64
	Width     int
	Height    int
	Codec     string
	FrameRate float64
	HasAudio  bool
}

// Processor wraps FFmpeg functionality.
type Processor struct {
	verbose bool
	timeout time.Duration
}

// NewProcessor creates a new FFmpeg processor.
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
		timeout: config.DefaultProcessTimeout,
	}
}

// SetTimeout overrides the per-invocation deadline.
func (p *Processor) SetTimeout(d time.Duration) { p.timeout = d }

// Run executes a prepared stream writing to outputPath. Stderr is captured
// for the EncodeFailed diagnostic; on any failure the partial output file is
// removed. op names the invocation for error messages.
func (p *Processor) Run(op string, stream *ffmpeg.Stream, outputPath string) error {
	var diag bytes.Buffer
	deadline := time.Now().Add(p.timeout)

	if p.verbose {
		log.Printf("ffmpeg %s -> %s", op, outputPath)
	}

	err := stream.
		OverWriteOutput().
		WithErrorOutput(&diag).
		WithTimeout(p.timeout).
		Run()

	if err != nil {
		os.Remove(outputPath)
		if time.Now().After(deadline) {
			return mederr.ExternalProcessTimeout(op, err)
		}
		return mederr.EncodeFailed(op, tailLines(diag.String(), 12), err)
	}

	info, statErr := os.Stat(outputPath)
	if statErr != nil || info.Size() == 0 {
		os.Remove(outputPath)
		return mederr.EncodeFailed(op, tailLines(diag.String(), 12),
			errors.New("output file missing or empty"))
	}
	return nil
}

// GetVideoMetadata retrieves metadata about a media file. A probe failure is
// reported as UnreadableMediaError.
func (p *Processor) GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, &mederr.UnreadableMediaError{Path: inputPath, Err: err}
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, &mederr.UnreadableMediaError{Path: inputPath, Err: errors.New("no streams found")}
	}

	var videoStream map[string]interface{}
	hasAudio := false
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		switch s["codec_type"] {
		case "video":
			if videoStream == nil {
				videoStream = s
			}
		case "audio":
			hasAudio = true
		}
	}

	meta := &VideoMetadata{HasAudio: hasAudio}

	if videoStream != nil {
		if w, ok := videoStream["width"].(float64); ok {
			meta.Width = int(w)
		}
		if h, ok := videoStream["height"].(float64); ok {
			meta.Height = int(h)
		}
		if c, ok := videoStream["codec_name"].(string); ok {
			meta.Codec = c
		}
		meta.FrameRate = parseFrameRate(videoStream)
	}

	meta.Duration = parseDuration(videoStream, data)
	if meta.Duration == 0 && videoStream != nil && meta.FrameRate > 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil {
				meta.Duration = frames / meta.FrameRate
			}
		}
	}
	if meta.Duration == 0 {
		return nil, &mederr.UnreadableMediaError{Path: inputPath, Err: errors.New("could not determine duration")}
	}

	return meta, nil
}

// GetAudioDuration returns the duration of an audio file in seconds.
func (p *Processor) GetAudioDuration(inputPath string) (float64, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return 0, &mederr.UnreadableMediaError{Path: inputPath, Err: err}
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return 0, errors.WithStack(err)
	}
	d := parseDuration(nil, data)
	if d == 0 {
		return 0, &mederr.UnreadableMediaError{Path: inputPath, Err: errors.New("could not determine duration")}
	}
	return d, nil
}

// parseDuration tries the video stream first, then the container format.
func parseDuration(videoStream map[string]interface{}, data map[string]interface{}) float64 {
	if videoStream != nil {
		if durationStr, ok := videoStream["duration"].(string); ok {
			if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil && d > 0 {
				return d
			}
		}
	}
	if format, ok := data["format"].(map[string]interface{}); ok {
		if durationStr, ok := format["duration"].(string); ok {
			if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil && d > 0 {
				return d
			}
		}
	}
	return 0
}

func parseFrameRate(videoStream map[string]interface{}) float64 {
	rFrameRate, ok := videoStream["r_frame_rate"].(string)
	if !ok {
		return 0
	}
	nums := strings.Split(rFrameRate, "/")
	if len(nums) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(nums[0], 64)
	den, err2 := strconv.ParseFloat(nums[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

// GetOptimalThreadCount returns the thread count handed to the encoder.
func GetOptimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	// Use 75% of available cores to prevent overload
	return int(math.Max(1, float64(cpuCount)*0.75))
}

// EnsureExtension rewrites filename to carry the given video extension.
func EnsureExtension(filename, extension string) string {
	extensions := []string{".mp4", ".webm", ".mkv", ".avi", ".mov"}
	for _, ext := range extensions {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename + extension
}

func tailLines(s string, n int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// FormatSeconds renders a seconds value the way ffmpeg arguments expect.
func FormatSeconds(seconds float64) string {
	return fmt.Sprintf("%.3f", seconds)
}
