// Package morph implements the console headline cross-fade: a two-phase
// cycle (morph then cooldown) that fades one text out while the next fades
// in, advancing cyclically through the configured list. The frame math is a
// pure function of elapsed wall-clock time, so output is frame-rate
// independent and directly testable.
package morph

import (
	"errors"
	"math"
	"time"
)

// Phase identifies the active half of a cycle.
type Phase string

const (
	PhaseMorph    Phase = "morph"
	PhaseCooldown Phase = "cooldown"
)

// Cycle describes one morph/cooldown rotation over a list of texts.
type Cycle struct {
	Texts    []string
	Morph    time.Duration
	Cooldown time.Duration
}

// Style captures the render state of one text span.
type Style struct {
	Opacity float64 `json:"opacity"`
	BlurPx  float64 `json:"blur_px"`
}

// Frame is the full render state at a point in time.
type Frame struct {
	Phase    Phase   `json:"phase"`
	Fraction float64 `json:"fraction"`
	Index    int     `json:"index"`
	Outgoing string  `json:"outgoing"`
	Incoming string  `json:"incoming"`
	Out      Style   `json:"out"`
	In       Style   `json:"in"`
}

const maxBlurPx = 8.0

var errNoTexts = errors.New("morph: at least two texts are required")

// Validate reports whether the cycle is usable.
func (c Cycle) Validate() error {
	if len(c.Texts) < 2 {
		return errNoTexts
	}
	if c.Morph <= 0 {
		return errors.New("morph: morph duration must be positive")
	}
	if c.Cooldown < 0 {
		return errors.New("morph: cooldown duration cannot be negative")
	}
	return nil
}

// Period returns the wall-clock length of one full cycle.
func (c Cycle) Period() time.Duration {
	return c.Morph + c.Cooldown
}

// At maps elapsed time since the animation epoch to a frame. Completed cycles
// advance the text index by (elapsed / period) mod len(texts); within the
// morph phase a cubic-eased fraction drives a power-law opacity cross-fade
// (f^0.3) with linear blur decay, matching the browser original.
func (c Cycle) At(elapsed time.Duration) (Frame, error) {
	if err := c.Validate(); err != nil {
		return Frame{}, err
	}
	if elapsed < 0 {
		elapsed = 0
	}
	period := c.Period()
	completed := int(elapsed / period)
	into := elapsed % period

	index := completed % len(c.Texts)
	next := (index + 1) % len(c.Texts)

	frame := Frame{
		Index:    index,
		Outgoing: c.Texts[index],
		Incoming: c.Texts[next],
	}

	if into < c.Morph {
		f := easeInOutCubic(float64(into) / float64(c.Morph))
		frame.Phase = PhaseMorph
		frame.Fraction = f
		frame.Out = Style{
			Opacity: math.Pow(1-f, 0.3),
			BlurPx:  maxBlurPx * f,
		}
		frame.In = Style{
			Opacity: math.Pow(f, 0.3),
			BlurPx:  maxBlurPx * (1 - f),
		}
		return frame, nil
	}

	frame.Phase = PhaseCooldown
	frame.Fraction = 1
	frame.Out = Style{Opacity: 0, BlurPx: maxBlurPx}
	frame.In = Style{Opacity: 1, BlurPx: 0}
	return frame, nil
}

// IndexAfter returns the active text index once n full cycles have completed.
func (c Cycle) IndexAfter(n int) int {
	if len(c.Texts) == 0 {
		return 0
	}
	n %= len(c.Texts)
	if n < 0 {
		n += len(c.Texts)
	}
	return n
}

func easeInOutCubic(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
