package kenburns

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scenecast/scenecast/internal/config"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
)

func TestClipDuration(t *testing.T) {
	tests := []struct {
		name          string
		requested     float64
		audioDuration float64
		hasAudio      bool
		want          float64
	}{
		{"no audio uses requested", 15, 0, false, 15},
		{"audio wins over requested", 15, 20, true, 20},
		{"shorter audio also wins", 15, 8.5, true, 8.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClipDuration(tt.requested, tt.audioDuration, tt.hasAudio)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestGenerateFailureLeavesNoOutput(t *testing.T) {
	// A garbage input image cannot encode. The final destination must stay
	// untouched either way.
	img := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(img, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "clip.mp4")

	proc := ffwrap.NewProcessor(false)
	proc.SetTimeout(30 * time.Second)
	if _, err := Generate(proc, config.KenBurnsOptions{
		ImagePath:  img,
		OutputPath: out,
		Duration:   1,
		Preset:     "1080p30",
	}); err == nil {
		t.Fatal("encoding a garbage image should fail")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("failed encode left a file at the destination: %v", err)
	}
}
