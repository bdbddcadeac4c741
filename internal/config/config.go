package config

import "time"

// RenderOptions defines options for the script-to-video pipeline.
type RenderOptions struct {
	ScriptPath    string
	OutputPath    string
	SubtitlePath  string // empty = no subtitle file
	Preset        string
	Theme         string
	Language      string
	VoiceSpeed    float64
	NarrationDir  string // pre-synthesized per-scene audio, skips synthesis
	BackgroundDir string
	LogoPath      string
	SettingsPath  string // optional YAML settings file
	Workers       int
	Verbose       bool
}

// FrameEncodeOptions defines options for encoding a numbered frame sequence.
type FrameEncodeOptions struct {
	Pattern    string // e.g. frames/frame_%06d.png
	OutputPath string
	Preset     string
	Verbose    bool
}

// KenBurnsOptions defines options for generating a pan/zoom clip from a still.
type KenBurnsOptions struct {
	ImagePath  string
	AudioPath  string // optional; when set, audio duration is authoritative
	OutputPath string
	Duration   float64
	Preset     string
	Verbose    bool
}

// FixVideoOptions defines options for container/frame-rate normalization.
type FixVideoOptions struct {
	InputPath  string
	OutputPath string
	FrameRate  int
	Verbose    bool
}

// ThumbnailOptions defines options for extracting a representative frame.
type ThumbnailOptions struct {
	InputPath  string
	OutputPath string
	Timestamp  float64 // seconds; <0 = default fraction into the video
	Verbose    bool
}

const (
	// Scene timing defaults
	DefaultFrameRate       = 30
	DefaultMinSceneSeconds = 2.5
	DefaultWordsPerMinute  = 160
	DefaultFadeInSeconds   = 0.4
	DefaultFadeOutSeconds  = 0.4
	DefaultMaxOverlap      = 1.0

	// Supported tempo band for pitch-preserving adjustment
	TempoFactorMin = 0.5
	TempoFactorMax = 1.5

	// Audio/video duration mismatch above this is padded, below it ignored
	DurationToleranceSeconds = 0.1

	// Default timestamp for thumbnails, as a fraction of the duration
	ThumbnailFraction = 0.25

	// External process deadline
	DefaultProcessTimeout = 120 * time.Second

	// Retries for transient synthesis failures
	SynthesisRetries = 2

	// Text overlay defaults
	FontSizePct   = 0.065 // of frame height
	LineSpacing   = 1.2
	TextPaddingPx = 40
	BoxOpacity    = 140 // 0-255

	// Logo overlay settings
	LogoWidthPct = 0.12
	LogoMarginPx = 20

	// Temporary directory prefix
	WorkDirPrefix = "scenecast_"
)
