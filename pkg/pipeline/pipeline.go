// Package pipeline is the public entry point. It wires the script, timing,
// rendering, compositing and assembly stages into the render pipeline and
// exposes the standalone media commands.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/assembler"
	"github.com/scenecast/scenecast/internal/audio"
	"github.com/scenecast/scenecast/internal/compositor"
	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/frames"
	"github.com/scenecast/scenecast/internal/job"
	"github.com/scenecast/scenecast/internal/kenburns"
	"github.com/scenecast/scenecast/internal/mederr"
	"github.com/scenecast/scenecast/internal/normalize"
	"github.com/scenecast/scenecast/internal/render"
	"github.com/scenecast/scenecast/internal/script"
	"github.com/scenecast/scenecast/internal/subtitle"
	"github.com/scenecast/scenecast/internal/thumbnail"
	"github.com/scenecast/scenecast/internal/timeline"
	"github.com/scenecast/scenecast/internal/tts"
	"golang.org/x/sync/errgroup"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
}

var audioExtensions = []string{".mp3", ".wav", ".m4a", ".aac", ".ogg"}

// RenderScript runs the full script-to-video pipeline and writes the final
// video (and optional subtitle track) to the configured output paths.
func RenderScript(ctx context.Context, opts config.RenderOptions) error {
	settings, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		return err
	}
	applyOverrides(settings, opts)

	preset, err := ffwrap.GetPreset(settings.Preset)
	if err != nil {
		return err
	}
	theme, err := render.GetTheme(settings.Theme)
	if err != nil {
		return err
	}
	if err := audio.ValidateTempoFactor(settings.VoiceSpeed); err != nil {
		return err
	}

	scriptText, err := os.ReadFile(opts.ScriptPath)
	if err != nil {
		return &mederr.AssetError{Path: opts.ScriptPath, Err: err}
	}
	texts, err := script.Segment(string(scriptText))
	if err != nil {
		return err
	}

	scratch, err := job.NewScratch()
	if err != nil {
		return err
	}
	defer scratch.Cleanup()

	proc := ffwrap.NewProcessor(opts.Verbose)
	proc.SetTimeout(time.Duration(settings.TimeoutSeconds) * time.Second)

	if opts.Verbose {
		log.Printf("job %s: %d scenes, preset %s, theme %s", scratch.ID, len(texts), preset.Name, theme.Name)
	}

	backgrounds, err := listBackgrounds(opts.BackgroundDir)
	if err != nil {
		return err
	}

	scenes, err := prepareScenes(ctx, proc, scratch, settings, opts, preset, texts, backgrounds)
	if err != nil {
		return err
	}

	tl, err := timeline.Build(scenes, settings.MaxOverlap, preset.FrameRate)
	if err != nil {
		return err
	}

	clips, err := renderClips(ctx, proc, scratch, settings, opts, preset, theme, tl)
	if err != nil {
		return err
	}

	videoTrack := scratch.Path("video_track" + preset.FileExtension)
	if err := compositor.Compose(proc, preset, tl, clips, videoTrack); err != nil {
		return err
	}

	narrationPaths := make([]string, len(tl.Scenes))
	for i, sc := range tl.Scenes {
		narrationPaths[i] = sc.NarrationPath
	}
	masterAudio := scratch.Path("narration_master.mp3")
	if err := audio.Concat(proc, scratch.Dir, narrationPaths, masterAudio); err != nil {
		return err
	}

	finalPath := scratch.Path("final" + preset.FileExtension)
	if err := assembler.Assemble(proc, preset, videoTrack, masterAudio, finalPath); err != nil {
		return err
	}

	outputPath := ffwrap.EnsureExtension(opts.OutputPath, preset.FileExtension)
	if err := job.MoveIntoPlace(finalPath, outputPath); err != nil {
		return err
	}

	if opts.SubtitlePath != "" {
		srtPath := scratch.Path("subtitles.srt")
		if err := subtitle.WriteFile(srtPath, subtitle.FromTimeline(tl)); err != nil {
			return err
		}
		if err := job.MoveIntoPlace(srtPath, opts.SubtitlePath); err != nil {
			return err
		}
	}

	if opts.Verbose {
		log.Printf("job %s: wrote %s (%.2fs)", scratch.ID, outputPath, tl.Duration)
	}
	return nil
}

// prepareScenes synthesizes (or locates) narration for every scene, applies
// the tempo adjustment, and derives each scene's duration.
func prepareScenes(ctx context.Context, proc *ffwrap.Processor, scratch *job.Scratch,
	settings *config.Settings, opts config.RenderOptions, preset ffwrap.Preset,
	texts, backgrounds []string) ([]timeline.Scene, error) {

	synth := tts.NewCommandSynthesizer("", proc, opts.Verbose)
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second

	scenes := make([]timeline.Scene, len(texts))
	for i, text := range texts {
		var narrationPath string
		var audioDuration float64

		if opts.NarrationDir != "" {
			path, err := findNarration(opts.NarrationDir, i)
			if err != nil {
				return nil, err
			}
			narrationPath = path
		} else {
			rawPath := scratch.Path(fmt.Sprintf("narration_%03d.mp3", i))
			sceneCtx, cancel := context.WithTimeout(ctx, timeout)
			_, err := tts.SynthesizeWithRetry(sceneCtx, synth, text, settings.Language, rawPath)
			cancel()
			if err != nil {
				return nil, err
			}
			narrationPath = rawPath
		}

		if !audio.IsNeutral(settings.VoiceSpeed) {
			adjusted := scratch.Path(fmt.Sprintf("narration_%03d_adj.mp3", i))
			if err := audio.Adjust(proc, narrationPath, adjusted, settings.VoiceSpeed); err != nil {
				return nil, err
			}
			narrationPath = adjusted
		}

		audioDuration, err := proc.GetAudioDuration(narrationPath)
		if err != nil {
			return nil, err
		}

		duration := timeline.EstimateDuration(text, timeline.EstimateParams{
			AudioDuration:   audioDuration,
			MinSceneSeconds: settings.MinSceneSeconds,
			WordsPerMinute:  settings.WordsPerMinute,
			FrameRate:       preset.FrameRate,
		})

		scenes[i] = timeline.Scene{
			Index:           i,
			Text:            text,
			BackgroundRef:   pickBackground(backgrounds, i),
			NarrationPath:   narrationPath,
			DurationSeconds: duration,
			FadeInSeconds:   settings.FadeInSeconds,
			FadeOutSeconds:  settings.FadeOutSeconds,
		}
	}
	return scenes, nil
}

// renderClips composes each scene's frame and encodes its clip, fanning the
// work out across a bounded worker pool.
func renderClips(ctx context.Context, proc *ffwrap.Processor, scratch *job.Scratch,
	settings *config.Settings, opts config.RenderOptions, preset ffwrap.Preset,
	theme render.Theme, tl *timeline.Timeline) ([]string, error) {

	style := render.FrameStyle{
		Width:       preset.Width,
		Height:      preset.Height,
		Theme:       theme,
		FontPath:    settings.FontPath,
		FontSizePct: settings.FontSizePct,
		LineSpacing: settings.LineSpacing,
		PaddingPx:   settings.PaddingPx,
		BoxOpacity:  settings.BoxOpacity,
		LogoPath:    opts.LogoPath,
	}

	workers := settings.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	if workers <= 0 {
		workers = ffwrap.GetOptimalThreadCount()
	}

	clips := make([]string, len(tl.Scenes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, placed := range tl.Scenes {
		i, placed := i, placed
		group.Go(func() error {
			// A failed sibling cancels the group; skip work that has not
			// started yet.
			if err := groupCtx.Err(); err != nil {
				return err
			}
			frame, err := render.ComposeFrame(placed.Text, placed.BackgroundRef, style)
			if err != nil {
				return errors.Wrapf(err, "compose scene %d", placed.Index)
			}
			framePath := scratch.Path(fmt.Sprintf("frame_%03d.png", i))
			if err := render.WritePNG(frame, framePath); err != nil {
				return err
			}
			if err := groupCtx.Err(); err != nil {
				return err
			}

			spec := render.ClipSpec{
				FramePath:       framePath,
				OutputPath:      scratch.Path(fmt.Sprintf("clip_%03d%s", i, preset.FileExtension)),
				DurationSeconds: placed.DurationSeconds,
			}
			// Interior transitions come from the cross-fade compositor; only
			// the timeline edges fade from and to black.
			if i == 0 {
				spec.FadeInSeconds = placed.FadeInSeconds
			}
			if i == len(tl.Scenes)-1 {
				spec.FadeOutSeconds = placed.FadeOutSeconds
			}
			if err := render.EncodeClip(proc, preset, spec); err != nil {
				return errors.Wrapf(err, "encode scene %d", placed.Index)
			}
			clips[i] = spec.OutputPath
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}

// applyOverrides lets non-zero command-line options win over file settings.
func applyOverrides(s *config.Settings, opts config.RenderOptions) {
	if opts.Preset != "" {
		s.Preset = opts.Preset
	}
	if opts.Theme != "" {
		s.Theme = opts.Theme
	}
	if opts.Language != "" {
		s.Language = opts.Language
	}
	if opts.VoiceSpeed > 0 {
		s.VoiceSpeed = opts.VoiceSpeed
	}
	if opts.Workers > 0 {
		s.Workers = opts.Workers
	}
}

// listBackgrounds returns the sorted image files in dir, or nil when no
// directory is configured.
func listBackgrounds(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &mederr.AssetError{Path: dir, Err: err}
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// pickBackground cycles through the background pool in scene order.
func pickBackground(backgrounds []string, index int) string {
	if len(backgrounds) == 0 {
		return ""
	}
	return backgrounds[index%len(backgrounds)]
}

// findNarration locates the pre-synthesized clip for a scene, named
// scene_NNN with any common audio extension (scene numbering is 1-based).
func findNarration(dir string, index int) (string, error) {
	base := filepath.Join(dir, fmt.Sprintf("scene_%03d", index+1))
	for _, ext := range audioExtensions {
		path := base + ext
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", &mederr.AssetError{Path: base + ".*", Err: errors.New("no narration clip for scene")}
}

// EncodeFrames encodes a numbered frame sequence into a video clip.
func EncodeFrames(opts config.FrameEncodeOptions) (string, error) {
	proc := ffwrap.NewProcessor(opts.Verbose)
	return frames.Encode(proc, opts)
}

// KenBurns renders a pan/zoom clip from a still image.
func KenBurns(opts config.KenBurnsOptions) (string, error) {
	proc := ffwrap.NewProcessor(opts.Verbose)
	return kenburns.Generate(proc, opts)
}

// FixVideo normalizes a video's frame rate, pixel format and color tags.
func FixVideo(opts config.FixVideoOptions) (string, error) {
	proc := ffwrap.NewProcessor(opts.Verbose)
	return normalize.Normalize(proc, opts)
}

// Thumbnail extracts a representative still frame from a video.
func Thumbnail(opts config.ThumbnailOptions) (string, error) {
	proc := ffwrap.NewProcessor(opts.Verbose)
	return thumbnail.Extract(proc, opts)
}
