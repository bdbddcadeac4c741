package job

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scenecast/scenecast/internal/config"
)

func TestScratchLifecycle(t *testing.T) {
	scratch, err := NewScratch()
	if err != nil {
		t.Fatalf("NewScratch: %v", err)
	}
	if scratch.ID == "" {
		t.Error("scratch should carry a job ID")
	}
	if !strings.Contains(filepath.Base(scratch.Dir), strings.TrimSuffix(config.WorkDirPrefix, "_")) {
		t.Errorf("scratch dir %q missing prefix", scratch.Dir)
	}

	p := scratch.Path("clip_000.mp4")
	if filepath.Dir(p) != scratch.Dir {
		t.Errorf("Path left the scratch dir: %q", p)
	}
	if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	scratch.Cleanup()
	if _, err := os.Stat(scratch.Dir); !os.IsNotExist(err) {
		t.Errorf("Cleanup left the directory behind: %v", err)
	}
}

func TestScratchesDoNotCollide(t *testing.T) {
	a, err := NewScratch()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Cleanup()
	b, err := NewScratch()
	if err != nil {
		t.Fatal(err)
	}
	defer b.Cleanup()
	if a.Dir == b.Dir || a.ID == b.ID {
		t.Errorf("concurrent scratches must not share state: %q vs %q", a.Dir, b.Dir)
	}
}

func TestMoveIntoPlace(t *testing.T) {
	src := filepath.Join(t.TempDir(), "artifact.mp4")
	if err := os.WriteFile(src, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(t.TempDir(), "nested", "out.mp4")

	if err := MoveIntoPlace(src, dst); err != nil {
		t.Fatalf("MoveIntoPlace: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "video" {
		t.Fatalf("destination content wrong: %q, %v", data, err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source should be gone after move")
	}
}
