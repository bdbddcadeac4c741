package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/ffmpeg"
	"github.com/scenecast/scenecast/internal/render"
	"github.com/scenecast/scenecast/pkg/pipeline"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "scenecast",
		Short: "Turn narration scripts into timed, narrated videos",
		Long: `scenecast renders a plain-text script into a narrated video: each
paragraph becomes a scene with synthesized narration, cross-fade transitions
and optional subtitles. It also ships standalone media utilities.

Examples:
  # Render a script to a 1080p video with subtitles
  scenecast render -i script.txt -o video.mp4 --subtitles video.srt

  # Normalize a video to constant 30 fps
  scenecast fix-video -i shaky.mp4

  # Animate a still image to the length of a narration track
  scenecast kenburns -i photo.jpg -a narration.mp3 -o clip.mp4`,
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render a script into a narrated video",
		Long: fmt.Sprintf(`Render a plain-text script into a narrated video. Paragraphs separated by
blank lines become scenes.

Available presets:
%s
Available themes:
%s
Example:
  scenecast render -i script.txt -o video.mp4 -p 1080p30 -t dark --subtitles video.srt`,
			formatNames(ffmpeg.PresetNames()), formatNames(render.ThemeNames())),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.RenderOptions{}

			opts.ScriptPath, _ = cmd.Flags().GetString("input")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.SubtitlePath, _ = cmd.Flags().GetString("subtitles")
			opts.Preset, _ = cmd.Flags().GetString("preset")
			opts.Theme, _ = cmd.Flags().GetString("theme")
			opts.Language, _ = cmd.Flags().GetString("language")
			opts.VoiceSpeed, _ = cmd.Flags().GetFloat64("voice-speed")
			opts.NarrationDir, _ = cmd.Flags().GetString("narration-dir")
			opts.BackgroundDir, _ = cmd.Flags().GetString("background-dir")
			opts.LogoPath, _ = cmd.Flags().GetString("logo")
			opts.SettingsPath, _ = cmd.Flags().GetString("settings")
			opts.Workers, _ = cmd.Flags().GetInt("workers")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			return pipeline.RenderScript(cmd.Context(), opts)
		},
	}

	encodeFramesCmd = &cobra.Command{
		Use:   "encode-frames",
		Short: "Encode a numbered frame sequence into a video",
		Long: `Encode a contiguous numbered image sequence into a video clip. The
sequence is validated before encoding; a gap in the numbering aborts the run
and names the first missing frame.

Example:
  scenecast encode-frames --pattern 'frames/frame_%06d.png' -o clip.mp4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.FrameEncodeOptions{}

			opts.Pattern, _ = cmd.Flags().GetString("pattern")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.Preset, _ = cmd.Flags().GetString("preset")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			out, err := pipeline.EncodeFrames(opts)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	kenburnsCmd = &cobra.Command{
		Use:   "kenburns",
		Short: "Animate a still image with a slow zoom",
		Long: `Render a pan/zoom clip from a still image. With an audio track the clip
lasts exactly as long as the audio; otherwise the requested duration is used.

Example:
  scenecast kenburns -i photo.jpg -a narration.mp3 -o clip.mp4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.KenBurnsOptions{}

			opts.ImagePath, _ = cmd.Flags().GetString("input")
			opts.AudioPath, _ = cmd.Flags().GetString("audio")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.Duration, _ = cmd.Flags().GetFloat64("duration")
			opts.Preset, _ = cmd.Flags().GetString("preset")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			out, err := pipeline.KenBurns(opts)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	fixVideoCmd = &cobra.Command{
		Use:   "fix-video",
		Short: "Normalize frame rate, pixel format and color tags",
		Long: `Re-encode a video to a constant frame rate with limited-range yuv420p
and BT.709 color tagging. Output defaults to <name>_fixed.mp4 next to the
input.

Example:
  scenecast fix-video -i input.mp4 -r 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.FixVideoOptions{}

			opts.InputPath, _ = cmd.Flags().GetString("input")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.FrameRate, _ = cmd.Flags().GetInt("frame-rate")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			out, err := pipeline.FixVideo(opts)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	thumbnailCmd = &cobra.Command{
		Use:   "thumbnail",
		Short: "Extract a representative still frame",
		Long: `Extract one frame of a video as an image. Without a timestamp the frame
is taken a quarter of the way in; timestamps past the end are pulled back to
the last frame.

Example:
  scenecast thumbnail -i video.mp4 -o cover.jpg --timestamp 12.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.ThumbnailOptions{}

			opts.InputPath, _ = cmd.Flags().GetString("input")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.Timestamp, _ = cmd.Flags().GetFloat64("timestamp")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			out, err := pipeline.Thumbnail(opts)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
)

func formatNames(names []string) string {
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("- %s\n", name))
	}
	return sb.String()
}

func init() {
	// Render command flags
	renderCmd.Flags().StringP("input", "i", "", "Script file (plain text)")
	renderCmd.Flags().StringP("output", "o", "", "Output video path")
	renderCmd.Flags().String("subtitles", "", "Write an SRT subtitle file to this path")
	renderCmd.Flags().StringP("preset", "p", "", "Encode preset")
	renderCmd.Flags().StringP("theme", "t", "", "Background theme")
	renderCmd.Flags().StringP("language", "l", "", "Narration language code (e.g. en, de)")
	renderCmd.Flags().Float64("voice-speed", 0, "Narration tempo factor (0.5-1.5)")
	renderCmd.Flags().String("narration-dir", "", "Directory of pre-synthesized scene audio (scene_001.mp3, ...)")
	renderCmd.Flags().String("background-dir", "", "Directory of background images, cycled per scene")
	renderCmd.Flags().String("logo", "", "Logo image overlaid top-right")
	renderCmd.Flags().String("settings", "", "YAML settings file")
	renderCmd.Flags().IntP("workers", "w", 0, "Parallel scene renders (0 = auto)")
	renderCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	renderCmd.MarkFlagRequired("input")
	renderCmd.MarkFlagRequired("output")

	// Encode-frames command flags
	encodeFramesCmd.Flags().String("pattern", "", "Frame filename pattern (e.g. 'frames/frame_%06d.png')")
	encodeFramesCmd.Flags().StringP("output", "o", "", "Output video path")
	encodeFramesCmd.Flags().StringP("preset", "p", "1080p30", "Encode preset")
	encodeFramesCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	encodeFramesCmd.MarkFlagRequired("pattern")
	encodeFramesCmd.MarkFlagRequired("output")

	// Kenburns command flags
	kenburnsCmd.Flags().StringP("input", "i", "", "Input image")
	kenburnsCmd.Flags().StringP("audio", "a", "", "Narration track; its duration becomes the clip duration")
	kenburnsCmd.Flags().StringP("output", "o", "", "Output video path")
	kenburnsCmd.Flags().Float64P("duration", "d", 15, "Clip duration in seconds (ignored with --audio)")
	kenburnsCmd.Flags().StringP("preset", "p", "1080p30", "Encode preset")
	kenburnsCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	kenburnsCmd.MarkFlagRequired("input")
	kenburnsCmd.MarkFlagRequired("output")

	// Fix-video command flags
	fixVideoCmd.Flags().StringP("input", "i", "", "Input video")
	fixVideoCmd.Flags().StringP("output", "o", "", "Output path (default <name>_fixed.mp4)")
	fixVideoCmd.Flags().IntP("frame-rate", "r", config.DefaultFrameRate, "Target frame rate")
	fixVideoCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	fixVideoCmd.MarkFlagRequired("input")

	// Thumbnail command flags
	thumbnailCmd.Flags().StringP("input", "i", "", "Input video")
	thumbnailCmd.Flags().StringP("output", "o", "", "Output image path (default <name>_thumb.jpg)")
	thumbnailCmd.Flags().Float64("timestamp", -1, "Extraction point in seconds (default: 25% into the video)")
	thumbnailCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	thumbnailCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(encodeFramesCmd)
	rootCmd.AddCommand(kenburnsCmd)
	rootCmd.AddCommand(fixVideoCmd)
	rootCmd.AddCommand(thumbnailCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
