package transition

import (
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
)

// CardFrame is how one card looks in one frame.
type CardFrame struct {
	ID          models.NoteID
	Role        Role
	Rect        geom.Rect
	Radius      float64
	Outline     []geom.Point
	Fill        geom.Color
	Text        string
	TextColor   geom.Color
	TextVisible bool
}

// TextBox is where the card label is laid out: inset 10 from the top-left
// corner and never narrower than 80.
func (c CardFrame) TextBox() geom.Rect {
	w := max(80, c.Rect.Width()-20)
	h := max(0, c.Rect.Height()-20)
	return geom.XYWH(c.Rect.X1+10, c.Rect.Y1+10, w, h)
}

// Frame is one painted step. Cards are in paint order; the focus card, when
// present, is last so it is drawn on top.
type Frame struct {
	Direction  Direction
	Step       int
	Steps      int
	T          float64
	E          float64
	Background geom.Color
	Cards      []CardFrame
}

// Final reports whether this is the last frame of the run.
func (f Frame) Final() bool { return f.Step >= f.Steps }

// Run steps a plan frame by frame. It carries (step, steps, plan) and
// nothing else; FrameAt is pure so a run can be inspected without ticking.
type Run struct {
	cfg   Config
	plan  Plan
	steps int
	step  int
}

// NewRun prepares a run positioned at step 0.
func NewRun(cfg Config, plan Plan) *Run {
	return &Run{cfg: cfg, plan: plan, steps: cfg.Steps()}
}

// Plan returns the plan being animated.
func (r *Run) Plan() Plan { return r.plan }

// Steps returns the number of frame intervals.
func (r *Run) Steps() int { return r.steps }

// Step returns the index of the next frame Tick will produce.
func (r *Run) Step() int { return r.step }

// Done reports whether the final frame has been produced.
func (r *Run) Done() bool { return r.step > r.steps }

// Tick produces the next frame and reports whether it was the final one.
// Ticking a finished run keeps returning the final frame.
func (r *Run) Tick() (Frame, bool) {
	s := min(r.step, r.steps)
	f := r.FrameAt(s)
	if r.step <= r.steps {
		r.step++
	}
	return f, s == r.steps
}

// FrameAt computes frame s of the run. s is clamped to [0, Steps()].
func (r *Run) FrameAt(s int) Frame {
	s = max(0, min(s, r.steps))
	t := float64(s) / float64(r.steps)
	e := geom.Clamp01(r.cfg.easing()(t))
	p := r.plan

	f := Frame{
		Direction:  p.Direction,
		Step:       s,
		Steps:      r.steps,
		T:          t,
		E:          e,
		Background: geom.MixColor(p.BGFrom, p.BGTo, e),
		Cards:      make([]CardFrame, 0, len(p.Cards)),
	}

	var focus *CardFrame
	for _, c := range p.Cards {
		cf := r.cardFrame(c, e)
		if c.Role == Focus {
			focus = &cf
			continue
		}
		f.Cards = append(f.Cards, cf)
	}
	if focus != nil {
		f.Cards = append(f.Cards, *focus)
	}
	return f
}

func (r *Run) cardFrame(c Card, e float64) CardFrame {
	p := r.plan
	rect := geom.LerpRect(c.Start, c.End, e)
	radius := geom.CardRadius(rect, r.cfg.Radius)

	fill := p.Fill
	if p.Direction == Out && c.Role == Other {
		dissolve := geom.Clamp01((e - r.cfg.DissolveStart) / (1 - r.cfg.DissolveStart))
		fill = geom.MixColor(p.Fill, p.BGTo, dissolve)
	}

	visible := c.ShowText
	switch {
	case !visible:
	case rect.Width() < r.cfg.TextMinWidth:
		visible = false
	case p.Direction == In && c.Role == Other && e > r.cfg.InTextCutoff:
		visible = false
	case p.Direction == Out && c.Role == Other:
		visible = false
	}

	return CardFrame{
		ID:          c.ID,
		Role:        c.Role,
		Rect:        rect,
		Radius:      radius,
		Outline:     geom.RoundedRectOutline(rect, radius),
		Fill:        fill,
		Text:        c.Label,
		TextColor:   p.TextColor,
		TextVisible: visible,
	}
}
