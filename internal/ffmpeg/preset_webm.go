package ffmpeg

import ffmpeg "github.com/u2takey/ffmpeg-go"

func init() {
	RegisterPreset(Preset{
		Name:          "webm-720p",
		Width:         1280,
		Height:        720,
		FrameRate:     30,
		VideoCodec:    "libvpx-vp9",
		AudioCodec:    "libopus",
		PixelFormat:   "yuv420p",
		CRF:           30,
		FileExtension: ".webm",
		Extra: ffmpeg.KwArgs{
			"deadline":     "good",
			"cpu-used":     2,
			"row-mt":       1,
			"tile-columns": 2,
			"b:v":          0, // required for constant-quality VP9
		},
	})
}
