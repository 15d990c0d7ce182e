package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ivlev/frameit/internal/animation"
	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/renderer"
	"github.com/ivlev/frameit/internal/source"
	"github.com/ivlev/frameit/internal/surface"
)

// Preview re-renders a scene onto Target at the animation frame rate until
// stopped. The clock is wall time since NewPreview.
type Preview struct {
	Renderer *renderer.Renderer
	Target   surface.Surface
	Assets   *source.Assets
	// OnFrame runs on the preview goroutine after each render.
	OnFrame func(now time.Duration)

	mu     sync.Mutex
	scene  config.Scene
	epoch  time.Time
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPreview prepares a stopped preview of scene on target.
func NewPreview(r *renderer.Renderer, target surface.Surface, scene config.Scene, assets *source.Assets) *Preview {
	return &Preview{
		Renderer: r,
		Target:   target,
		Assets:   assets,
		scene:    scene,
		epoch:    time.Now(),
	}
}

// Now is the preview clock.
func (p *Preview) Now() time.Duration {
	return time.Since(p.epoch)
}

// Update mutates the scene under the preview lock. fn receives the clock
// value to use for Play or Resume.
func (p *Preview) Update(fn func(s *config.Scene, now time.Duration)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.scene, p.Now())
}

// Scene returns a copy of the current scene.
func (p *Preview) Scene() config.Scene {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scene
}

// Running reports whether the loop is active.
func (p *Preview) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Start launches the loop. A second Start while running is a no-op.
func (p *Preview) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	p.parent = ctx
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(loopCtx, p.done)
}

// Resume repaints the target at the current clock and restarts the loop
// with the context of the last Start.
func (p *Preview) Resume() {
	p.mu.Lock()
	parent := p.parent
	p.mu.Unlock()
	if parent == nil || parent.Err() != nil {
		return
	}
	p.RenderNow()
	p.Start(parent)
}

// Stop cancels the pending frame and waits for the loop to exit, so no
// stale render can race a later explicit one.
func (p *Preview) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// RenderNow draws one frame at the current clock.
func (p *Preview) RenderNow() {
	p.render(nil)
}

func (p *Preview) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	fps := p.Scene().Animation.FPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	rng := animation.LiveRand()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.render(rng)
		}
	}
}

func (p *Preview) render(rng animation.Rand) {
	p.mu.Lock()
	s := p.scene
	now := p.Now()
	p.mu.Unlock()

	p.Renderer.Render(p.Target, renderer.Frame{Scene: &s, Assets: p.Assets, Now: now, Rand: rng})
	if p.OnFrame != nil {
		p.OnFrame(now)
	}
}
