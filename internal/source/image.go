package source

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ivlev/frameit/internal/system"
)

// ImageSource is a list of image files, one per slot.
type ImageSource struct {
	paths []string
}

// NewImageSource accepts a single file or a directory; directory entries
// are sorted by name and filtered to supported images.
func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && system.IsImageFile(entry.Name()) && !isPDF(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) Count() int {
	return len(s.paths)
}

// Paths returns the files in slot order.
func (s *ImageSource) Paths() []string {
	return s.paths
}

func (s *ImageSource) Load(index int) (image.Image, error) {
	if index < 0 || index >= len(s.paths) {
		return nil, fmt.Errorf("слот %d вне диапазона", index)
	}
	return decodeFile(s.paths[index])
}

func (s *ImageSource) Close() error {
	return nil
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// Open returns the source behind path: the pages of a PDF, or the image
// files of a single file or directory.
func Open(path string) (Source, error) {
	if isPDF(path) {
		pdf, err := NewFitzPDFSource(path)
		if err != nil {
			return nil, err
		}
		return pdf, nil
	}
	src, err := NewImageSource(path)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// LoadImage returns the first image of the source at path. Files are png,
// jpeg, gif, webp, bmp or tiff; a PDF yields its first page and a directory
// its first image by name.
func LoadImage(path string) (image.Image, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if src.Count() == 0 {
		return nil, fmt.Errorf("в %s нет изображений", path)
	}
	return src.Load(0)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования %s: %w", path, err)
	}
	return img, nil
}

// Expand turns CLI arguments into a flat list of image paths: directories
// are listed, other entries are kept as they are.
func Expand(args []string) []string {
	var out []string
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
			if src, err := NewImageSource(arg); err == nil {
				out = append(out, src.Paths()...)
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
