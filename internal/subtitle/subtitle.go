// Package subtitle derives subtitle cues from timeline offsets and writes
// them as an SRT track. Cues are never timed independently of the timeline,
// which keeps subtitles and video in lock-step by construction.
package subtitle

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/timeline"
)

// Cue is a single subtitle entry.
type Cue struct {
	Index        int // 1-based
	StartSeconds float64
	EndSeconds   float64
	Text         string
}

// FromTimeline produces one cue per scene. A cue ends where the next scene
// starts, so cues tile the timeline without gaps or overlap even when scenes
// cross-fade.
func FromTimeline(tl *timeline.Timeline) []Cue {
	cues := make([]Cue, len(tl.Scenes))
	for i, sc := range tl.Scenes {
		end := sc.Offset + sc.DurationSeconds
		if i < len(tl.Scenes)-1 {
			end = tl.Scenes[i+1].Offset
		}
		cues[i] = Cue{
			Index:        i + 1,
			StartSeconds: sc.Offset,
			EndSeconds:   end,
			Text:         flatten(sc.Text),
		}
	}
	return cues
}

// Write emits the cues in SRT format.
func Write(w io.Writer, cues []Cue) error {
	for _, cue := range cues {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			cue.Index,
			Timestamp(cue.StartSeconds),
			Timestamp(cue.EndSeconds),
			cue.Text)
		if err != nil {
			return errors.Wrap(err, "write subtitle cue")
		}
	}
	return nil
}

// WriteFile writes an SRT file at path.
func WriteFile(path string, cues []Cue) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create subtitle file %s", path)
	}
	if err := Write(f, cues); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close subtitle file")
}

// Timestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
func Timestamp(seconds float64) string {
	ms := int64(seconds*1000 + 0.5)
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
