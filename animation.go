package watchface

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PeekTween animates a peek card's bounds over time. Hosts without a system
// card of their own use it to slide a simulated card in and out, feeding
// every intermediate rect to OnPeekCardPositionUpdate.
//
// There is no global animation manager; callers invoke Update each frame.
type PeekTween struct {
	tweens [4]*gween.Tween
	rect   Rect
	hide   bool
	Done   bool
}

// Update advances the tween by dt seconds and returns the current card
// rect. Once a hide animation finishes the rect is empty.
func (t *PeekTween) Update(dt float32) Rect {
	if t.Done {
		return t.Rect()
	}
	fields := [4]*float64{&t.rect.X, &t.rect.Y, &t.rect.Width, &t.rect.Height}
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		*fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone
	return t.Rect()
}

// Rect returns the current card rect.
func (t *PeekTween) Rect() Rect {
	if t.Done && t.hide {
		return Rect{}
	}
	return t.rect
}

// TweenPeekIn slides card up from below the display bottom to its resting
// position over duration seconds.
func TweenPeekIn(card Rect, displayHeight float64, duration float32, fn ease.TweenFunc) *PeekTween {
	from := card
	from.Y = displayHeight
	return newPeekTween(from, card, duration, fn, false)
}

// TweenPeekOut slides card down past displayHeight. The final rect is empty.
func TweenPeekOut(card Rect, displayHeight float64, duration float32, fn ease.TweenFunc) *PeekTween {
	to := card
	to.Y = displayHeight
	return newPeekTween(card, to, duration, fn, true)
}

func newPeekTween(from, to Rect, duration float32, fn ease.TweenFunc, hide bool) *PeekTween {
	if fn == nil {
		fn = ease.OutCubic
	}
	t := &PeekTween{rect: from, hide: hide}
	t.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	t.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	t.tweens[2] = gween.New(float32(from.Width), float32(to.Width), duration, fn)
	t.tweens[3] = gween.New(float32(from.Height), float32(to.Height), duration, fn)
	return t
}
