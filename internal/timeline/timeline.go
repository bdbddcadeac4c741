package timeline

import (
	"github.com/scenecast/scenecast/internal/mederr"
)

// PlacedScene is a scene with its absolute start offset on the timeline and
// the cross-fade overlap it shares with the next scene.
type PlacedScene struct {
	Scene
	Offset          float64
	OverlapWithNext float64 // 0 for the last scene
}

// Timeline is the ordered, gap-free layout of all scenes after transition
// blending.
type Timeline struct {
	Scenes    []PlacedScene
	Duration  float64
	FrameRate int
}

// Build lays scenes out in order. The overlap between scene i and i+1 is
// min(fadeOut[i], fadeIn[i+1], maxOverlap), quantized down to the frame grid
// and capped below both scene durations so offsets stay strictly increasing.
// Total duration = sum of scene durations - sum of overlaps.
func Build(scenes []Scene, maxOverlap float64, fps int) (*Timeline, error) {
	if len(scenes) == 0 {
		return nil, mederr.Configf("timeline requires at least one scene")
	}
	framePeriod := 1.0 / float64(fps)

	placed := make([]PlacedScene, len(scenes))
	offset := 0.0
	for i, sc := range scenes {
		if sc.DurationSeconds <= 0 {
			return nil, mederr.Configf("scene %d has non-positive duration %.3f", sc.Index, sc.DurationSeconds)
		}
		sc.ClampFades()

		overlap := 0.0
		if i < len(scenes)-1 {
			next := scenes[i+1]
			overlap = sc.FadeOutSeconds
			if next.FadeInSeconds < overlap {
				overlap = next.FadeInSeconds
			}
			if maxOverlap < overlap {
				overlap = maxOverlap
			}
			overlap = QuantizeDown(overlap, fps)
			// An overlap consuming a whole clip would stall the offset.
			for overlap >= sc.DurationSeconds || overlap >= next.DurationSeconds {
				overlap -= framePeriod
			}
			if overlap < 0 {
				overlap = 0
			}
		}

		placed[i] = PlacedScene{Scene: sc, Offset: offset, OverlapWithNext: overlap}
		offset += sc.DurationSeconds - overlap
	}

	return &Timeline{
		Scenes:    placed,
		Duration:  placed[len(placed)-1].Offset + placed[len(placed)-1].DurationSeconds,
		FrameRate: fps,
	}, nil
}
