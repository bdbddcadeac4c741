package ffmpeg

import ffmpeg "github.com/u2takey/ffmpeg-go"

func init() {
	mp4Extra := ffmpeg.KwArgs{
		"preset":    "medium",
		"profile:v": "high",
		"movflags":  "+faststart",
	}

	RegisterPreset(Preset{
		Name:          "1080p30",
		Width:         1920,
		Height:        1080,
		FrameRate:     30,
		VideoCodec:    "libx264",
		AudioCodec:    "aac",
		PixelFormat:   "yuv420p",
		VideoBitrate:  "4M",
		FileExtension: ".mp4",
		Extra:         mp4Extra,
	})

	RegisterPreset(Preset{
		Name:          "720p30",
		Width:         1280,
		Height:        720,
		FrameRate:     30,
		VideoCodec:    "libx264",
		AudioCodec:    "aac",
		PixelFormat:   "yuv420p",
		VideoBitrate:  "2M",
		FileExtension: ".mp4",
		Extra:         mp4Extra,
	})

	RegisterPreset(Preset{
		Name:          "vertical1080",
		Width:         1080,
		Height:        1920,
		FrameRate:     30,
		VideoCodec:    "libx264",
		AudioCodec:    "aac",
		PixelFormat:   "yuv420p",
		VideoBitrate:  "4M",
		FileExtension: ".mp4",
		Extra:         mp4Extra,
	})

	RegisterPreset(Preset{
		Name:          "square1080",
		Width:         1080,
		Height:        1080,
		FrameRate:     30,
		VideoCodec:    "libx264",
		AudioCodec:    "aac",
		PixelFormat:   "yuv420p",
		VideoBitrate:  "4M",
		FileExtension: ".mp4",
		Extra:         mp4Extra,
	})
}
