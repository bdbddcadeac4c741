package timeline

import (
	"math"
	"testing"
)

func makeScenes(durations ...float64) []Scene {
	scenes := make([]Scene, len(durations))
	for i, d := range durations {
		scenes[i] = Scene{
			Index:           i,
			Text:            "scene",
			DurationSeconds: d,
			FadeInSeconds:   0.4,
			FadeOutSeconds:  0.4,
		}
	}
	return scenes
}

func TestBuildOverlapsShortenTimeline(t *testing.T) {
	tl, err := Build(makeScenes(3.0, 4.0), 1.0, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// overlap = min(0.4, 0.4, 1.0) = 0.4
	if want := 3.0 + 4.0 - 0.4; math.Abs(tl.Duration-want) > 1e-9 {
		t.Errorf("duration %.4f, want %.4f", tl.Duration, want)
	}
	if tl.Scenes[0].Offset != 0 {
		t.Errorf("first offset %.4f, want 0", tl.Scenes[0].Offset)
	}
	if want := 2.6; math.Abs(tl.Scenes[1].Offset-want) > 1e-9 {
		t.Errorf("second offset %.4f, want %.4f", tl.Scenes[1].Offset, want)
	}
	if tl.Scenes[len(tl.Scenes)-1].OverlapWithNext != 0 {
		t.Errorf("last scene must have no trailing overlap")
	}
}

func TestBuildMaxOverlapCap(t *testing.T) {
	scenes := makeScenes(5.0, 5.0)
	scenes[0].FadeOutSeconds = 1.5
	scenes[1].FadeInSeconds = 1.5
	tl, err := Build(scenes, 1.0, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := 9.0; math.Abs(tl.Duration-want) > 1e-9 {
		t.Errorf("duration %.4f, want %.4f", tl.Duration, want)
	}
}

func TestBuildZeroFadesAreHardCuts(t *testing.T) {
	scenes := makeScenes(2.5, 3.0, 4.0)
	for i := range scenes {
		scenes[i].FadeInSeconds = 0
		scenes[i].FadeOutSeconds = 0
	}
	tl, err := Build(scenes, 1.0, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := 9.5; math.Abs(tl.Duration-want) > 1e-9 {
		t.Errorf("duration %.4f, want %.4f", tl.Duration, want)
	}
	for i, sc := range tl.Scenes {
		if sc.OverlapWithNext != 0 {
			t.Errorf("scene %d overlap %.4f, want 0", i, sc.OverlapWithNext)
		}
	}
}

func TestBuildOffsetsStrictlyIncrease(t *testing.T) {
	// Short scenes with fades that would otherwise swallow a whole clip.
	scenes := makeScenes(0.5, 0.5, 0.5)
	for i := range scenes {
		scenes[i].FadeInSeconds = 1.0
		scenes[i].FadeOutSeconds = 1.0
	}
	tl, err := Build(scenes, 2.0, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 1; i < len(tl.Scenes); i++ {
		if tl.Scenes[i].Offset <= tl.Scenes[i-1].Offset {
			t.Fatalf("offset %d (%.4f) not after offset %d (%.4f)",
				i, tl.Scenes[i].Offset, i-1, tl.Scenes[i-1].Offset)
		}
	}
}

func TestBuildOverlapsOnFrameGrid(t *testing.T) {
	scenes := makeScenes(3.0, 3.0)
	scenes[0].FadeOutSeconds = 0.333
	scenes[1].FadeInSeconds = 0.333
	tl, err := Build(scenes, 1.0, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	overlap := tl.Scenes[0].OverlapWithNext
	frames := overlap * 30
	if math.Abs(frames-math.Round(frames)) > 1e-6 {
		t.Errorf("overlap %.6f is not a whole number of frame periods", overlap)
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	if _, err := Build(nil, 1.0, 30); err == nil {
		t.Error("empty scene list should fail")
	}
	if _, err := Build(makeScenes(0), 1.0, 30); err == nil {
		t.Error("non-positive duration should fail")
	}
}

func TestBuildSingleScene(t *testing.T) {
	tl, err := Build(makeScenes(4.2), 1.0, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if math.Abs(tl.Duration-4.2) > 1e-9 {
		t.Errorf("duration %.4f, want 4.2", tl.Duration)
	}
}
