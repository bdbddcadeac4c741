// Package compositor blends the per-scene clips into one continuous video
// track according to the timeline layout.
package compositor

import (
	"github.com/scenecast/scenecast/internal/mederr"
	"github.com/scenecast/scenecast/internal/timeline"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Compose joins clips in timeline order into outputPath. Adjacent clips with
// a positive overlap are blended with an xfade cross-dissolve anchored at the
// next scene's timeline offset; zero-overlap joins are hard cuts. clips[i]
// must be the encoded clip for tl.Scenes[i].
func Compose(proc *ffwrap.Processor, preset ffwrap.Preset, tl *timeline.Timeline, clips []string, outputPath string) error {
	if len(clips) != len(tl.Scenes) {
		return mederr.Configf("compositor got %d clips for %d scenes", len(clips), len(tl.Scenes))
	}

	if len(clips) == 1 {
		stream := ffmpeg.Input(clips[0]).Output(outputPath, ffmpeg.KwArgs{"c": "copy"})
		return proc.Run("compose", stream, outputPath)
	}

	cur := ffmpeg.Input(clips[0])
	for i := 1; i < len(clips); i++ {
		next := ffmpeg.Input(clips[i])
		overlap := tl.Scenes[i-1].OverlapWithNext
		if overlap > 0 {
			// xfade offsets are relative to the accumulated stream, which by
			// construction matches the timeline offsets.
			cur = ffmpeg.Filter([]*ffmpeg.Stream{cur, next}, "xfade", ffmpeg.Args{}, ffmpeg.KwArgs{
				"transition": "fade",
				"duration":   ffwrap.FormatSeconds(overlap),
				"offset":     ffwrap.FormatSeconds(tl.Scenes[i].Offset),
			})
		} else {
			cur = ffmpeg.Filter([]*ffmpeg.Stream{cur, next}, "concat", ffmpeg.Args{}, ffmpeg.KwArgs{
				"n": 2, "v": 1, "a": 0,
			})
		}
	}

	stream := cur.Output(outputPath, preset.VideoArgs())
	return proc.Run("compose", stream, outputPath)
}
