package ffmpeg

import (
	"strings"

	"github.com/scenecast/scenecast/internal/mederr"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Preset is a named, immutable bundle of encode settings resolved by name at
// invocation time.
type Preset struct {
	Name          string
	Width         int
	Height        int
	FrameRate     int
	VideoCodec    string
	AudioCodec    string
	PixelFormat   string
	VideoBitrate  string // empty = constant-quality policy via CRF
	CRF           int
	FileExtension string
	Extra         ffmpeg.KwArgs
}

var presets = make(map[string]Preset)

// RegisterPreset adds a preset to the registry.
func RegisterPreset(p Preset) {
	presets[p.Name] = p
}

// GetPreset returns a preset by name. Unknown names are a configuration
// error naming the available presets.
func GetPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, mederr.Configf("unknown preset %q (available: %s)",
			name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames returns the registered preset names, sorted.
func PresetNames() []string {
	names := maps.Keys(presets)
	slices.Sort(names)
	return names
}

// OutputArgs builds the encoder argument set for this preset.
func (p Preset) OutputArgs() ffmpeg.KwArgs {
	kwargs := ffmpeg.KwArgs{
		"c:v":     p.VideoCodec,
		"c:a":     p.AudioCodec,
		"pix_fmt": p.PixelFormat,
		"r":       p.FrameRate,
		"threads": GetOptimalThreadCount(),
	}
	if p.VideoBitrate != "" {
		kwargs["b:v"] = p.VideoBitrate
		kwargs["maxrate"] = p.VideoBitrate
	} else {
		kwargs["crf"] = p.CRF
	}
	for k, v := range p.Extra {
		kwargs[k] = v
	}
	return kwargs
}

// VideoArgs is OutputArgs without an audio stream, for silent intermediates.
func (p Preset) VideoArgs() ffmpeg.KwArgs {
	kwargs := p.OutputArgs()
	delete(kwargs, "c:a")
	kwargs["an"] = ""
	return kwargs
}
