package render

import (
	"fmt"
	"strings"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ClipSpec describes how a composed still becomes a timed silent clip.
type ClipSpec struct {
	FramePath       string
	OutputPath      string
	DurationSeconds float64
	// FadeInSeconds/FadeOutSeconds > 0 bake an edge fade into the clip.
	// Interior fades are handled by the cross-fade compositor instead.
	FadeInSeconds  float64
	FadeOutSeconds float64
}

// EncodeClip loops a still frame into a constant-frame-rate silent clip of
// exactly the requested duration.
func EncodeClip(proc *ffwrap.Processor, preset ffwrap.Preset, spec ClipSpec) error {
	input := ffmpeg.Input(spec.FramePath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": preset.FrameRate,
		"t":         ffwrap.FormatSeconds(spec.DurationSeconds),
	})

	filters := []string{fmt.Sprintf("format=%s", preset.PixelFormat)}
	if spec.FadeInSeconds > 0 {
		filters = append(filters, fmt.Sprintf("fade=t=in:st=0:d=%s",
			ffwrap.FormatSeconds(spec.FadeInSeconds)))
	}
	if spec.FadeOutSeconds > 0 {
		st := spec.DurationSeconds - spec.FadeOutSeconds
		if st < 0 {
			st = 0
		}
		filters = append(filters, fmt.Sprintf("fade=t=out:st=%s:d=%s",
			ffwrap.FormatSeconds(st), ffwrap.FormatSeconds(spec.FadeOutSeconds)))
	}

	kwargs := preset.VideoArgs()
	kwargs["vf"] = strings.Join(filters, ",")

	stream := input.Output(spec.OutputPath, kwargs)
	return proc.Run("scene-clip", stream, spec.OutputPath)
}
