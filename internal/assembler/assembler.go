// Package assembler muxes the composited video track with the master
// narration track into the final deliverable.
package assembler

import (
	"math"

	"github.com/scenecast/scenecast/internal/config"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Assemble combines videoPath and audioPath into outputPath. Track lengths
// within the tolerance are muxed as-is; a shorter video is extended by
// cloning its last frame, a shorter audio track is extended with silence, so
// the output always carries both streams for its full duration.
func Assemble(proc *ffwrap.Processor, preset ffwrap.Preset, videoPath, audioPath, outputPath string) error {
	videoMeta, err := proc.GetVideoMetadata(videoPath)
	if err != nil {
		return err
	}
	audioDuration, err := proc.GetAudioDuration(audioPath)
	if err != nil {
		return err
	}

	diff := videoMeta.Duration - audioDuration
	videoShort := diff < -config.DurationToleranceSeconds
	audioShort := diff > config.DurationToleranceSeconds

	video := ffmpeg.Input(videoPath)
	audio := ffmpeg.Input(audioPath)

	kwargs := ffmpeg.KwArgs{
		"c:a":      preset.AudioCodec,
		"movflags": "+faststart",
	}

	if videoShort {
		video = video.Filter("tpad", ffmpeg.Args{}, ffmpeg.KwArgs{
			"stop_mode":     "clone",
			"stop_duration": ffwrap.FormatSeconds(math.Abs(diff)),
		})
		// Padding forces a re-encode of the video stream.
		kwargs["c:v"] = preset.VideoCodec
		kwargs["pix_fmt"] = preset.PixelFormat
		kwargs["r"] = preset.FrameRate
		if preset.VideoBitrate != "" {
			kwargs["b:v"] = preset.VideoBitrate
		} else {
			kwargs["crf"] = preset.CRF
		}
	} else {
		kwargs["c:v"] = "copy"
	}

	if audioShort {
		audio = audio.Filter("apad", ffmpeg.Args{}, ffmpeg.KwArgs{
			"whole_dur": ffwrap.FormatSeconds(videoMeta.Duration),
		})
	}

	stream := ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputPath, kwargs)
	return proc.Run("assemble", stream, outputPath)
}
