package subtitle

import (
	"bytes"
	"math"
	"testing"

	"github.com/scenecast/scenecast/internal/timeline"
)

func buildTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	scenes := []timeline.Scene{
		{Index: 0, Text: "First scene\nwith a line break", DurationSeconds: 3.0, FadeOutSeconds: 0.4},
		{Index: 1, Text: "Second scene", DurationSeconds: 4.0, FadeInSeconds: 0.4, FadeOutSeconds: 0.4},
		{Index: 2, Text: "Third scene", DurationSeconds: 2.5, FadeInSeconds: 0.4},
	}
	tl, err := timeline.Build(scenes, 1.0, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tl
}

func TestFromTimelineTilesWithoutOverlap(t *testing.T) {
	tl := buildTimeline(t)
	cues := FromTimeline(tl)
	if len(cues) != len(tl.Scenes) {
		t.Fatalf("got %d cues, want %d", len(cues), len(tl.Scenes))
	}

	if cues[0].StartSeconds != 0 {
		t.Errorf("first cue starts at %.4f, want 0", cues[0].StartSeconds)
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Errorf("cue %d has index %d", i, cue.Index)
		}
		if cue.EndSeconds <= cue.StartSeconds {
			t.Errorf("cue %d is empty: %.4f..%.4f", i, cue.StartSeconds, cue.EndSeconds)
		}
		if i > 0 && math.Abs(cues[i-1].EndSeconds-cue.StartSeconds) > 1e-9 {
			t.Errorf("gap between cue %d and %d: %.4f vs %.4f",
				i-1, i, cues[i-1].EndSeconds, cue.StartSeconds)
		}
	}
	last := cues[len(cues)-1]
	if math.Abs(last.EndSeconds-tl.Duration) > 1e-9 {
		t.Errorf("last cue ends at %.4f, timeline ends at %.4f", last.EndSeconds, tl.Duration)
	}
}

func TestFromTimelineFlattensText(t *testing.T) {
	cues := FromTimeline(buildTimeline(t))
	if cues[0].Text != "First scene with a line break" {
		t.Errorf("text not flattened: %q", cues[0].Text)
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{59.9995, "00:01:00,000"},
		{61.25, "00:01:01,250"},
		{3661.5, "01:01:01,500"},
	}
	for _, tt := range tests {
		if got := Timestamp(tt.seconds); got != tt.want {
			t.Errorf("Timestamp(%.4f) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWriteFormat(t *testing.T) {
	cues := []Cue{
		{Index: 1, StartSeconds: 0, EndSeconds: 2.6, Text: "First scene"},
		{Index: 2, StartSeconds: 2.6, EndSeconds: 6.2, Text: "Second scene"},
	}
	var buf bytes.Buffer
	if err := Write(&buf, cues); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:02,600\nFirst scene\n\n" +
		"2\n00:00:02,600 --> 00:00:06,200\nSecond scene\n\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}
