package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/config"
	"github.com/scenecast/scenecast/internal/mederr"

	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
)

func writeFrames(t *testing.T, dir string, indices ...int) string {
	t.Helper()
	for _, idx := range indices {
		name := fmt.Sprintf("frame_%06d.png", idx)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "frame_%06d.png")
}

func TestScanContiguous(t *testing.T) {
	pattern := writeFrames(t, t.TempDir(), 0, 1, 2, 3, 4)
	seq, err := Scan(pattern)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if seq.StartIndex != 0 || seq.Count != 5 {
		t.Errorf("got start %d count %d, want 0 and 5", seq.StartIndex, seq.Count)
	}
}

func TestScanNonZeroStart(t *testing.T) {
	pattern := writeFrames(t, t.TempDir(), 10, 11, 12)
	seq, err := Scan(pattern)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if seq.StartIndex != 10 || seq.Count != 3 {
		t.Errorf("got start %d count %d, want 10 and 3", seq.StartIndex, seq.Count)
	}
}

func TestScanCitesFirstMissingFrame(t *testing.T) {
	pattern := writeFrames(t, t.TempDir(), 0, 1, 3, 4, 6)
	_, err := Scan(pattern)
	if err == nil {
		t.Fatal("gap in sequence should fail")
	}
	var missing *mederr.MissingFrameError
	if !errors.As(err, &missing) {
		t.Fatalf("error %T, want MissingFrameError", err)
	}
	if missing.Index != 2 {
		t.Errorf("cited index %d, want 2 (the first gap)", missing.Index)
	}
}

func TestScanNoMatches(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "frame_%06d.png")
	if _, err := Scan(pattern); err == nil {
		t.Error("empty directory should fail")
	}
}

func TestScanIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	pattern := writeFrames(t, dir, 0, 1, 2)
	for _, name := range []string{"notes.txt", "frame_abc.png", "other_000001.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	seq, err := Scan(pattern)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if seq.Count != 3 {
		t.Errorf("got count %d, want 3", seq.Count)
	}
}

func TestScanRejectsPatternWithoutPlaceholder(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "frame.png")); err == nil {
		t.Errorf("pattern without %%d placeholder should fail")
	}
}

func TestEncodeFailureLeavesNoOutput(t *testing.T) {
	// The frame files hold garbage, so the encode cannot succeed. The final
	// destination must stay untouched either way.
	pattern := writeFrames(t, t.TempDir(), 0, 1, 2)
	out := filepath.Join(t.TempDir(), "clip.mp4")

	proc := ffwrap.NewProcessor(false)
	proc.SetTimeout(30 * time.Second)
	if _, err := Encode(proc, config.FrameEncodeOptions{
		Pattern:    pattern,
		OutputPath: out,
		Preset:     "1080p30",
	}); err == nil {
		t.Fatal("encoding garbage frames should fail")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("failed encode left a file at the destination: %v", err)
	}
}
