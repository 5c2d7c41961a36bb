package imageio

import (
	"os"

	"github.com/VKoskiv/c-ray/internal/rayerr"
	"github.com/VKoskiv/c-ray/internal/render"
)

// WriteFrame encodes frame and writes it to dir/name_count.ext.
func WriteFrame(frame *render.Frame, dir, name string, count int, f FileType) error {
	path := OutputPath(dir, name, count, f)
	file, err := os.Create(path)
	if err != nil {
		return rayerr.Wrap(rayerr.WriteFailure, path, err)
	}
	defer file.Close()

	if err := Encode(file, frame.Img, f); err != nil {
		return err
	}
	return nil
}
