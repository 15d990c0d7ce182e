package animation

import (
	"math"
	"math/rand/v2"
	"time"
)

// Motion styles.
const (
	StyleNone      = "none"
	StyleFloat     = "float"
	StylePulse     = "pulse"
	StyleBounce    = "bounce"
	StyleFade      = "fade"
	StyleSlide     = "slide"
	StyleSpin      = "spin"
	StyleSwing     = "swing"
	StyleZoom      = "zoom"
	StylePop       = "pop"
	StyleShake     = "shake"
	StyleWobble    = "wobble"
	StyleHeartbeat = "heartbeat"
	StyleGlitch    = "glitch"
)

// Directions.
const (
	DirectionUp    = "up"
	DirectionDown  = "down"
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Delta is the transform an element receives for one frame. Offsets are in
// pixels, rotation in degrees, scale and opacity are multipliers.
type Delta struct {
	Scale       float64
	XOffset     float64
	YOffset     float64
	Opacity     float64
	RotationDeg float64
}

// Identity is the neutral pose.
var Identity = Delta{Scale: 1, Opacity: 1}

// Rand is the random source used by stochastic styles.
type Rand interface {
	Float64() float64
}

// NewRand returns a reproducible source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// LiveRand returns a source seeded from the clock. Output differs between
// runs and between frames.
func LiveRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

type styleFunc func(p, k, amp float64, dir string, rng Rand) Delta

var styles = map[string]styleFunc{
	StyleNone:      func(float64, float64, float64, string, Rand) Delta { return Identity },
	StyleFloat:     floating,
	StylePulse:     pulse,
	StyleBounce:    bounce,
	StyleFade:      fade,
	StyleSlide:     slide,
	StyleSpin:      spin,
	StyleSwing:     swing,
	StyleZoom:      zoom,
	StylePop:       pop,
	StyleShake:     shake,
	StyleWobble:    wobble,
	StyleHeartbeat: heartbeat,
	StyleGlitch:    glitch,
}

// IsStyle reports whether name is a known motion style.
func IsStyle(name string) bool {
	_, ok := styles[name]
	return ok
}

// Apply converts progress p into a transform delta for style.
// intensity is 0..100 with 50 as the reference strength. Every style except
// glitch is a pure function of its inputs; glitch draws from rng on every
// call, so a live rng gives different output frame to frame while a seeded
// one replays exactly. A nil rng disables glitch.
func Apply(style string, p, intensity float64, direction string, rng Rand) Delta {
	fn, ok := styles[style]
	if !ok {
		return Identity
	}
	if math.IsNaN(p) {
		return Identity
	}
	k := math.Max(0, intensity) / 50
	amp := 40 * k // pixels of travel at the reference intensity
	return fn(p, k, amp, direction, rng)
}

// sign returns -1 for up/left travel and +1 otherwise.
func sign(dir string) float64 {
	if dir == DirectionUp || dir == DirectionLeft {
		return -1
	}
	return 1
}

func horizontal(dir string) bool {
	return dir == DirectionLeft || dir == DirectionRight
}

func floating(p, k, amp float64, dir string, _ Rand) Delta {
	d := Identity
	offset := math.Sin(p*2*math.Pi) * amp * 0.5
	if horizontal(dir) {
		d.XOffset = offset * sign(dir)
	} else {
		d.YOffset = offset * sign(dir)
	}
	return d
}

func pulse(p, k, _ float64, _ string, _ Rand) Delta {
	d := Identity
	d.Scale = 1 + math.Sin(p*2*math.Pi)*0.05*k
	return d
}

func bounce(p, k, amp float64, dir string, _ Rand) Delta {
	d := Identity
	h := math.Abs(math.Sin(p * math.Pi))
	d.YOffset = h * amp * sign(dir)
	// Squash slightly on contact.
	d.Scale = 1 + (1-h)*0.03*k
	return d
}

// fade peaks at mid-cycle: opacity = sin(p*pi).
func fade(p, _, _ float64, _ string, _ Rand) Delta {
	d := Identity
	d.Opacity = math.Sin(p * math.Pi)
	return d
}

// slide enters from the direction during the first half and holds.
func slide(p, k, amp float64, dir string, _ Rand) Delta {
	d := Identity
	q := math.Min(p*2, 1)
	travel := (1 - Ease(EaseOut, q)) * amp * 3
	if horizontal(dir) {
		d.XOffset = -travel * sign(dir)
	} else {
		d.YOffset = -travel * sign(dir)
	}
	d.Opacity = lerp(0.2, 1, q)
	return d
}

func spin(p, _, _ float64, dir string, _ Rand) Delta {
	d := Identity
	rot := 360 * p
	if dir == DirectionLeft || dir == DirectionUp {
		rot = -rot
	}
	d.RotationDeg = rot
	return d
}

func swing(p, k, _ float64, _ string, _ Rand) Delta {
	d := Identity
	d.RotationDeg = math.Sin(p*2*math.Pi) * 15 * k
	return d
}

func zoom(p, k, _ float64, _ string, _ Rand) Delta {
	d := Identity
	d.Scale = 1 + math.Sin(p*math.Pi)*0.2*k
	return d
}

// pop scales in over the first third of the cycle and then holds, so the
// element has settled before the loop restarts.
func pop(p, k, _ float64, _ string, _ Rand) Delta {
	d := Identity
	q := math.Min(p*3, 1)
	from := math.Max(0, 1-0.5*k)
	d.Scale = lerp(from, 1, easeOutBack(q))
	d.Opacity = q
	return d
}

// shake oscillates quickly and dies out over the cycle.
func shake(p, _, amp float64, dir string, _ Rand) Delta {
	d := Identity
	offset := math.Sin(p*math.Pi*12) * amp * 0.25 * (1 - p)
	if dir == DirectionUp || dir == DirectionDown {
		d.YOffset = offset
	} else {
		d.XOffset = offset
	}
	return d
}

func wobble(p, k, amp float64, _ string, _ Rand) Delta {
	d := Identity
	decay := 1 - p
	d.RotationDeg = math.Sin(p*math.Pi*6) * 6 * k * decay
	d.XOffset = math.Sin(p*math.Pi*6) * amp * 0.2 * decay
	return d
}

// heartbeat gives two beats in the first half of the cycle.
func heartbeat(p, k, _ float64, _ string, _ Rand) Delta {
	d := Identity
	if p < 0.5 {
		d.Scale = 1 + math.Abs(math.Sin(p*4*math.Pi))*0.08*k
	}
	return d
}

// glitch is the stochastic style: every call samples rng.
func glitch(_, k, amp float64, _ string, rng Rand) Delta {
	d := Identity
	if rng == nil {
		return d
	}
	trigger := rng.Float64()
	jx := rng.Float64()*2 - 1
	jy := rng.Float64()*2 - 1
	flicker := rng.Float64()
	if trigger > math.Min(0.9, 0.3*k) {
		return d
	}
	d.XOffset = jx * amp * 0.5
	d.YOffset = jy * amp * 0.1
	d.Opacity = 0.7 + 0.3*flicker
	return d
}
