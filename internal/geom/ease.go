package geom

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing maps normalized time in [0, 1] to normalized progress.
type Easing func(t float64) float64

// EaseInOutCubic accelerates through the first half and decelerates through
// the second. ease(0) = 0, ease(0.5) = 0.5, ease(1) = 1.
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Linear is the identity easing.
func Linear(t float64) float64 {
	return Clamp01(t)
}

// FromTween adapts a gween easing function to an Easing. The result is
// clamped and pinned at both endpoints so float32 rounding inside gween can
// never push a card past its start or end rect.
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		t = Clamp01(t)
		switch t {
		case 0:
			return 0
		case 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// DefaultEasing names the easing used when none is configured.
const DefaultEasing = "in-out-cubic"

var tweenEasings = map[string]ease.TweenFunc{
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-quart":     ease.InQuart,
	"out-quart":    ease.OutQuart,
	"in-out-quart": ease.InOutQuart,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"in-expo":      ease.InExpo,
	"out-expo":     ease.OutExpo,
	"in-out-expo":  ease.InOutExpo,
	"in-circ":      ease.InCirc,
	"out-circ":     ease.OutCirc,
	"in-out-circ":  ease.InOutCirc,
}

// EasingByName resolves a configured easing name. The empty string and
// "in-out-cubic" select EaseInOutCubic; "linear" selects Linear; any other
// name must be one of EasingNames.
func EasingByName(name string) (Easing, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", DefaultEasing:
		return EaseInOutCubic, nil
	case "linear":
		return Linear, nil
	default:
		fn, ok := tweenEasings[n]
		if !ok {
			return nil, fmt.Errorf("geom: unknown easing %q", name)
		}
		return FromTween(fn), nil
	}
}

// EasingNames lists every name EasingByName accepts, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(tweenEasings)+2)
	names = append(names, DefaultEasing, "linear")
	for n := range tweenEasings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
