// Package transition plans and steps the morph animation between the
// editor and the gallery. Planning is pure; a Run is an explicit state
// object the host ticks once per frame.
package transition

import (
	"fmt"
	"time"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
)

// Direction says which way the morph runs.
type Direction int

const (
	// Out zooms from the editor to the gallery.
	Out Direction = iota
	// In zooms from a gallery thumbnail to the editor.
	In
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// ParseDirection accepts "out" or "in".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "out":
		return Out, nil
	case "in":
		return In, nil
	}
	return Out, fmt.Errorf("transition: unknown direction %q", s)
}

// Role distinguishes the focus card from the rest.
type Role int

const (
	Other Role = iota
	Focus
)

// Config holds animation timing and visibility thresholds.
type Config struct {
	Duration      time.Duration
	FrameInterval time.Duration
	MaxCards      int
	// TextMinWidth hides card text while a card is narrower than this.
	TextMinWidth float64
	// DissolveStart is the eased progress at which non-focus cards begin to
	// fade into the gallery background on the way out.
	DissolveStart float64
	// InTextCutoff hides non-focus text on the way in once eased progress
	// passes it.
	InTextCutoff float64
	// CollapseScale shrinks the editor rect into the placeholder used by
	// cards that have no on-screen counterpart.
	CollapseScale float64
	// FallbackScale shrinks the viewport when the editor rect is unknown.
	FallbackScale float64
	Radius        float64
	Easing        geom.Easing
}

// DefaultConfig returns the stock timing: 320 ms at 20 ms per frame, at most
// 12 cards.
func DefaultConfig() Config {
	return Config{
		Duration:      320 * time.Millisecond,
		FrameInterval: 20 * time.Millisecond,
		MaxCards:      12,
		TextMinWidth:  150,
		DissolveStart: 0.12,
		InTextCutoff:  0.75,
		CollapseScale: 0.2,
		FallbackScale: 0.8,
		Radius:        16,
		Easing:        geom.EaseInOutCubic,
	}
}

// MinSteps is the lowest step count a run uses regardless of timing.
const MinSteps = 12

// Steps returns the number of frame intervals in a run. A run paints
// Steps()+1 frames, for s = 0..Steps().
func (c Config) Steps() int {
	if c.FrameInterval <= 0 {
		return MinSteps
	}
	return max(MinSteps, int(c.Duration/c.FrameInterval))
}

func (c Config) easing() geom.Easing {
	if c.Easing == nil {
		return geom.EaseInOutCubic
	}
	return c.Easing
}

// Palette holds the fixed colors the animation blends between.
type Palette struct {
	EditorBG  geom.Color
	GalleryBG geom.Color
	CardFill  geom.Color
	Text      geom.Color
}

// DefaultPalette is the green note theme.
func DefaultPalette() Palette {
	return Palette{
		EditorBG:  geom.MustHex("#3b5012"),
		GalleryBG: geom.MustHex("#1f2b0f"),
		CardFill:  geom.MustHex("#3b5012"),
		Text:      geom.MustHex("#d7e9b0"),
	}
}

// Card is one note's proxy for the duration of a run.
type Card struct {
	ID       models.NoteID
	Label    string
	Start    geom.Rect
	End      geom.Rect
	Role     Role
	ShowText bool
}

// Plan is everything a run needs. It is immutable once built.
type Plan struct {
	Direction Direction
	Focus     models.NoteID
	Cards     []Card
	BGFrom    geom.Color
	BGTo      geom.Color
	Fill      geom.Color
	TextColor geom.Color
}

// Scene is the on-screen geometry captured when a run is planned.
type Scene struct {
	// Viewport is the window client area.
	Viewport geom.Rect
	// Editor is the editor text area. An empty rect means it could not be
	// measured and is synthesized from Viewport.
	Editor geom.Rect
	// Thumbs holds gallery thumbnail rects: start rects for In, end rects
	// for Out. Notes missing here use the collapsed rect.
	Thumbs map[models.NoteID]geom.Rect
	// Labels is the preview text drawn on each card.
	Labels map[models.NoteID]string
}

// EditorRect returns the measured editor rect, or a rect synthesized from
// the viewport when the measurement is missing.
func (s Scene) EditorRect(cfg Config) geom.Rect {
	if !s.Editor.Empty() {
		return s.Editor
	}
	scale := cfg.FallbackScale
	if scale <= 0 {
		scale = DefaultConfig().FallbackScale
	}
	return s.Viewport.Scale(scale)
}

// Collapsed is the placeholder rect for cards with no on-screen
// counterpart: the editor rect shrunk about its center. Both directions use
// the same placeholder.
func (s Scene) Collapsed(cfg Config) geom.Rect {
	return s.EditorRect(cfg).Scale(cfg.CollapseScale)
}

// SelectCards picks the notes to animate: focus first, then the rest in
// order, capped at limit. If focus is not in order the first limit ids are
// used.
func SelectCards(order []models.NoteID, focus models.NoteID, limit int) []models.NoteID {
	if limit <= 0 {
		return nil
	}
	var out []models.NoteID
	if models.IndexOf(order, focus) >= 0 {
		out = append(out, focus)
	}
	for _, id := range order {
		if len(out) >= limit {
			break
		}
		if id != focus {
			out = append(out, id)
		}
	}
	return out
}

// PlanOut morphs the editor into the gallery. The focus card starts at the
// editor rect and the rest start collapsed; every card ends at its thumbnail
// or, when it has none, collapsed.
func PlanOut(cfg Config, pal Palette, focus models.NoteID, order []models.NoteID, sc Scene) (Plan, error) {
	ids := SelectCards(order, focus, cfg.MaxCards)
	if len(ids) == 0 {
		return Plan{}, fmt.Errorf("transition: plan out: %w", apperr.ErrEmptyOrder)
	}
	editor := sc.EditorRect(cfg)
	collapsed := sc.Collapsed(cfg)

	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		c := Card{ID: id, Label: sc.Labels[id], Start: collapsed, End: collapsed}
		if id == focus {
			c.Role, c.ShowText, c.Start = Focus, true, editor
		}
		if r, ok := sc.Thumbs[id]; ok {
			c.End = r
		}
		cards = append(cards, c)
	}
	return Plan{
		Direction: Out,
		Focus:     focus,
		Cards:     cards,
		BGFrom:    pal.EditorBG,
		BGTo:      pal.GalleryBG,
		Fill:      pal.CardFill,
		TextColor: pal.Text,
	}, nil
}

// PlanIn morphs a gallery thumbnail into the editor. Cards start at their
// thumbnails (collapsed when off screen); the focus card ends at the editor
// rect and the rest collapse toward it.
func PlanIn(cfg Config, pal Palette, focus models.NoteID, order []models.NoteID, sc Scene) (Plan, error) {
	ids := SelectCards(order, focus, cfg.MaxCards)
	if len(ids) == 0 {
		return Plan{}, fmt.Errorf("transition: plan in: %w", apperr.ErrEmptyOrder)
	}
	editor := sc.EditorRect(cfg)
	collapsed := sc.Collapsed(cfg)

	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		c := Card{ID: id, Label: sc.Labels[id], Start: collapsed, End: collapsed}
		if r, ok := sc.Thumbs[id]; ok {
			c.Start = r
		}
		if id == focus {
			c.Role, c.ShowText, c.End = Focus, true, editor
		}
		cards = append(cards, c)
	}
	return Plan{
		Direction: In,
		Focus:     focus,
		Cards:     cards,
		BGFrom:    pal.GalleryBG,
		BGTo:      pal.EditorBG,
		Fill:      pal.CardFill,
		TextColor: pal.Text,
	}, nil
}
