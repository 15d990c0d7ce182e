// Package engine drives the renderer for export and live preview.
package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/frameit/internal/animation"
	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/renderer"
	"github.com/ivlev/frameit/internal/source"
	"github.com/ivlev/frameit/internal/surface"
	"github.com/ivlev/frameit/internal/system"
	"github.com/ivlev/frameit/internal/video"
)

// Job is one export request. It is derived from the scene on every call
// and never stored.
type Job struct {
	Format     string
	Resolution config.Resolution
	FPS        int
	DurationMs int
	Dir        string
}

// Frames is the number of frames an animated job records.
func (j Job) Frames() int {
	if j.FPS <= 0 || j.DurationMs <= 0 {
		return 0
	}
	return int(math.Ceil(float64(j.DurationMs) * float64(j.FPS) / 1000))
}

// FrameTime is the animation clock of frame i. Time advances by a fixed
// 1/fps step, so the output length never depends on render speed.
func (j Job) FrameTime(i int) time.Duration {
	return time.Duration(i) * time.Second / time.Duration(j.FPS)
}

// JobFor builds the export job of scene.
func JobFor(scene *config.Scene) Job {
	dir := scene.Export.Dir
	if dir == "" {
		dir = "."
	}
	return Job{
		Format:     scene.Export.Format,
		Resolution: scene.Resolve(),
		FPS:        scene.Animation.FPS,
		DurationMs: scene.Export.DurationMs,
		Dir:        dir,
	}
}

type (
	sinkOpener   func(ctx context.Context, spec video.Spec) (video.Sink, video.Result, error)
	stillEncoder func(ctx context.Context, img image.Image, path, format string, quality int) (video.Result, error)
)

// Exporter renders scenes to files.
type Exporter struct {
	Renderer *renderer.Renderer
	// Preview, when set, is paused for the length of an animated export.
	Preview *Preview
	// Seed makes glitch motion reproducible across exports.
	Seed      uint64
	ShowStats bool

	open   sinkOpener
	encode stillEncoder
}

// NewExporter returns an exporter writing through the video package.
func NewExporter(r *renderer.Renderer) *Exporter {
	return &Exporter{
		Renderer: r,
		open:     video.Open,
		encode:   video.EncodeStill,
	}
}

// Export picks still or animated export from the scene's format.
func (e *Exporter) Export(ctx context.Context, scene *config.Scene, assets *source.Assets) (video.Result, error) {
	if config.IsMotionFormat(scene.Export.Format) {
		return e.ExportAnimation(ctx, scene, assets)
	}
	return e.ExportStill(ctx, scene, assets)
}

// ExportStill renders exactly one frame in the resting pose and encodes it
// as frameit-<resolution>.<ext>.
func (e *Exporter) ExportStill(ctx context.Context, scene *config.Scene, assets *source.Assets) (video.Result, error) {
	job := JobFor(scene)
	if !config.IsStillFormat(job.Format) {
		job.Format = config.FormatPNG
	}

	s := *scene
	s.Animation.Stop()
	s.Guides = config.Guides{}

	buf := system.GetClearImage(image.Rect(0, 0, job.Resolution.Width, job.Resolution.Height))
	defer system.PutImage(buf)
	e.Renderer.Render(surface.Wrap(buf), renderer.Frame{Scene: &s, Assets: assets})

	if err := os.MkdirAll(job.Dir, 0755); err != nil {
		return video.Result{}, err
	}
	path := filepath.Join(job.Dir, fmt.Sprintf("frameit-%s.%s", job.Resolution.ID, video.Ext(job.Format)))
	res, err := e.encode(ctx, buf, path, job.Format, s.Export.Quality)
	if err != nil {
		return res, err
	}
	if res.Notice != "" {
		log.Printf("[!] %s", res.Notice)
	}
	log.Printf("[+++] Кадр сохранён: %s", res.Path)
	return res, nil
}

// ExportAnimation records the scene's animation from t=0 for the configured
// duration into frameit-animation.<ext>. With animation disabled every
// frame holds the resting pose. A running preview is stopped first and
// restarted afterwards.
func (e *Exporter) ExportAnimation(ctx context.Context, scene *config.Scene, assets *source.Assets) (video.Result, error) {
	job := JobFor(scene)
	if !config.IsMotionFormat(job.Format) {
		job.Format = config.FormatGIF
	}
	n := job.Frames()
	if n == 0 {
		return video.Result{}, video.ErrNoFrames
	}

	if e.Preview != nil && e.Preview.Running() {
		e.Preview.Stop()
		defer e.Preview.Resume()
	}

	s := *scene
	s.Guides = config.Guides{}
	if s.Animation.Enabled {
		s.Animation.Play(0)
	} else {
		s.Animation.Stop()
	}

	if err := os.MkdirAll(job.Dir, 0755); err != nil {
		return video.Result{}, err
	}
	path := filepath.Join(job.Dir, "frameit-animation."+video.Ext(job.Format))
	w, h := job.Resolution.Width, job.Resolution.Height

	sink, res, err := e.open(ctx, video.Spec{
		Path: path, Format: job.Format,
		Width: w, Height: h,
		FPS: job.FPS, Quality: s.Export.Quality, Frames: n,
	})
	if err != nil {
		return res, err
	}
	if res.Notice != "" {
		log.Printf("[!] %s", res.Notice)
	}
	log.Printf("[*] Запись анимации: %d кадров @ %d FPS, %dx%d", n, job.FPS, w, h)

	buf := system.GetClearImage(image.Rect(0, 0, w, h))
	defer system.PutImage(buf)
	dst := surface.Wrap(buf)
	rng := animation.NewRand(e.Seed)

	start := time.Now()
	for i := range n {
		if err := ctx.Err(); err != nil {
			sink.Close()
			return res, err
		}
		e.Renderer.Render(dst, renderer.Frame{Scene: &s, Assets: assets, Now: job.FrameTime(i), Rand: rng})
		if err := sink.WriteFrame(buf); err != nil {
			sink.Close()
			return res, fmt.Errorf("кадр %d: %w", i, err)
		}
	}
	if err := sink.Close(); err != nil {
		return res, err
	}

	if e.ShowStats {
		total := time.Since(start)
		fmt.Printf("--- [PERFORMANCE REPORT] ---\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
			n, total.Seconds(), float64(n)/total.Seconds())
	}
	log.Printf("[+++] Анимация сохранена: %s", res.Path)
	return res, nil
}
