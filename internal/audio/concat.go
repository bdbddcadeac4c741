package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	ffwrap "github.com/scenecast/scenecast/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Concat joins per-scene narration clips into one master track, in scene
// order, via the concat demuxer. listDir holds the generated file list.
func Concat(proc *ffwrap.Processor, listDir string, inputs []string, outputPath string) error {
	if len(inputs) == 1 {
		return copyFile(inputs[0], outputPath)
	}

	listPath := filepath.Join(listDir, "narration_inputs.txt")
	f, err := os.Create(listPath)
	if err != nil {
		return errors.Wrap(err, "create concat list")
	}
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			f.Close()
			return errors.Wrapf(err, "resolve narration path %s", in)
		}
		fmt.Fprintf(f, "file '%s'\n", abs)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close concat list")
	}

	stream := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy"})
	return proc.Run("narration-concat", stream, outputPath)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "read %s", src)
	}
	return errors.Wrapf(os.WriteFile(dst, data, 0o644), "write %s", dst)
}
