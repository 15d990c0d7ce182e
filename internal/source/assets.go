package source

import (
	"context"
	"image"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/frameit/internal/config"
)

// Assets are the decoded rasters a scene refers to. A slot that failed to
// load is nil; the renderer skips it.
type Assets struct {
	Images     []image.Image
	Background image.Image
	Watermark  image.Image
}

// Present counts the non-nil image slots.
func (a *Assets) Present() int {
	n := 0
	for _, img := range a.Images {
		if img != nil {
			n++
		}
	}
	return n
}

// LoadAssets decodes every file the scene references in parallel. Decode
// errors are logged and leave the slot empty; only cancellation of ctx is
// returned as an error.
func LoadAssets(ctx context.Context, scene *config.Scene) (*Assets, error) {
	a := &Assets{Images: make([]image.Image, len(scene.Images))}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	load := func(path string, dst *image.Image) {
		if path == "" {
			return
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := LoadImage(path)
			if err != nil {
				log.Printf("[!] Пропуск ресурса %s: %v", path, err)
				return nil
			}
			*dst = img
			return nil
		})
	}

	for i, slot := range scene.Images {
		load(slot.Path, &a.Images[i])
	}
	if scene.Background.Type == config.BackgroundImage {
		load(scene.Background.ImagePath, &a.Background)
	}
	if scene.Watermark.Enabled && scene.Watermark.Kind == config.WatermarkImage {
		load(scene.Watermark.ImagePath, &a.Watermark)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a, nil
}
