// Package imageio encodes a rendered render.Frame to the 8-bit output
// formats spec.md §6 requires ("fileType" ∈ {"png","bmp"}), writing to
// "outputFilePath/outputFileName_count.ext". Grounded on the teacher's
// load/ttf.go use of golang.org/x/image for a different subpackage of
// the same module.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"

	"golang.org/x/image/bmp"

	"github.com/VKoskiv/c-ray/internal/rayerr"
)

// FileType selects the output codec.
type FileType int

const (
	PNG FileType = iota
	BMP
)

// ParseFileType maps the scene document's "fileType" string to a
// FileType, per spec.md §6.
func ParseFileType(s string) (FileType, error) {
	switch s {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	default:
		return 0, rayerr.New(rayerr.InputMalformed, "unrecognized fileType %q", s)
	}
}

func (f FileType) extension() string {
	if f == BMP {
		return "bmp"
	}
	return "png"
}

// Encode writes img to w in the format named by f.
func Encode(w io.Writer, img image.Image, f FileType) error {
	var err error
	switch f {
	case BMP:
		err = bmp.Encode(w, img)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return rayerr.Wrap(rayerr.WriteFailure, "", err)
	}
	return nil
}

// OutputPath builds "dir/name_count.ext" per spec.md §6's
// "outputFilePath/outputFileName_count.ext" naming rule. count is the
// image index (e.g. the completed-pass count on a cancelled render).
func OutputPath(dir, name string, count int, f FileType) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d.%s", name, count, f.extension()))
}
