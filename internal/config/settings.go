package config

import (
	"os"

	"github.com/scenecast/scenecast/internal/mederr"
	"gopkg.in/yaml.v3"
)

// Settings holds the tunable rendering parameters that can be overridden from
// a YAML file. Flags win over file values; file values win over defaults.
type Settings struct {
	Theme      string  `yaml:"theme"`
	Preset     string  `yaml:"preset"`
	Language   string  `yaml:"language"`
	VoiceSpeed float64 `yaml:"voice_speed"` // tempo factor for narration

	WordsPerMinute  int     `yaml:"words_per_minute"`
	MinSceneSeconds float64 `yaml:"min_scene_seconds"`
	FadeInSeconds   float64 `yaml:"fade_in_seconds"`
	FadeOutSeconds  float64 `yaml:"fade_out_seconds"`
	MaxOverlap      float64 `yaml:"max_overlap_seconds"`

	FontPath    string  `yaml:"font_path"` // empty = embedded Go Regular
	FontSizePct float64 `yaml:"font_size_pct"`
	LineSpacing float64 `yaml:"line_spacing"`
	PaddingPx   int     `yaml:"padding_px"`
	BoxOpacity  int     `yaml:"box_opacity"`

	Workers        int `yaml:"workers"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DefaultSettings returns settings with product defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Theme:      "dark",
		Preset:     "1080p30",
		Language:   "en",
		VoiceSpeed: 1.0,

		WordsPerMinute:  DefaultWordsPerMinute,
		MinSceneSeconds: DefaultMinSceneSeconds,
		FadeInSeconds:   DefaultFadeInSeconds,
		FadeOutSeconds:  DefaultFadeOutSeconds,
		MaxOverlap:      DefaultMaxOverlap,

		FontSizePct: FontSizePct,
		LineSpacing: LineSpacing,
		PaddingPx:   TextPaddingPx,
		BoxOpacity:  BoxOpacity,

		Workers:        0, // auto
		TimeoutSeconds: int(DefaultProcessTimeout.Seconds()),
	}
}

// LoadSettings reads a YAML settings file over the defaults. An empty path
// returns the defaults unchanged.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mederr.Configf("read settings %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, mederr.Configf("parse settings %s: %v", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects settings that would produce an unusable render.
func (s *Settings) Validate() error {
	if s.VoiceSpeed <= 0 {
		return mederr.Configf("voice_speed must be positive, got %.2f", s.VoiceSpeed)
	}
	if s.WordsPerMinute <= 0 {
		return mederr.Configf("words_per_minute must be positive, got %d", s.WordsPerMinute)
	}
	if s.MinSceneSeconds <= 0 {
		return mederr.Configf("min_scene_seconds must be positive, got %.2f", s.MinSceneSeconds)
	}
	if s.FadeInSeconds < 0 || s.FadeOutSeconds < 0 {
		return mederr.Configf("fade durations must not be negative")
	}
	if s.MaxOverlap < 0 {
		return mederr.Configf("max_overlap_seconds must not be negative")
	}
	if s.BoxOpacity < 0 || s.BoxOpacity > 255 {
		return mederr.Configf("box_opacity must be in 0-255, got %d", s.BoxOpacity)
	}
	if s.FontSizePct <= 0 || s.FontSizePct > 0.5 {
		return mederr.Configf("font_size_pct must be in (0, 0.5], got %.3f", s.FontSizePct)
	}
	return nil
}
