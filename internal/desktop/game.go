// Package desktop hosts the widget in an ebiten window.
package desktop

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/starford/stickynote/internal/editor"
	"github.com/starford/stickynote/internal/screen"
	"github.com/starford/stickynote/internal/view"
	"github.com/starford/stickynote/internal/widget"
)

// Window configures the host window.
type Window struct {
	Title     string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	IconDir   string
}

// caretPeriod is the caret blink half-cycle.
const caretPeriod = 530 * time.Millisecond

var editKeys = []struct {
	key    ebiten.Key
	action editor.Action
}{
	{ebiten.KeyEnter, editor.ActionNewline},
	{ebiten.KeyNumpadEnter, editor.ActionNewline},
	{ebiten.KeyTab, editor.ActionTab},
	{ebiten.KeyBackspace, editor.ActionBackspace},
	{ebiten.KeyDelete, editor.ActionDelete},
	{ebiten.KeyArrowLeft, editor.ActionLeft},
	{ebiten.KeyArrowRight, editor.ActionRight},
	{ebiten.KeyArrowUp, editor.ActionUp},
	{ebiten.KeyArrowDown, editor.ActionDown},
	{ebiten.KeyHome, editor.ActionHome},
	{ebiten.KeyEnd, editor.ActionEnd},
}

// Game implements ebiten.Game. Watcher events arrive on events and are
// submitted on the update goroutine.
type Game struct {
	ctrl    *widget.Controller
	model   *screen.Model
	painter *painter
	theme   screen.Theme
	events  <-chan widget.Command
	done    <-chan struct{}
	log     *slog.Logger

	hover screen.Target
	blink time.Duration
	chars []rune
}

// NewGame wires a controller already bound to model.
func NewGame(ctrl *widget.Controller, model *screen.Model, theme screen.Theme, win Window, events <-chan widget.Command, logger *slog.Logger) (*Game, error) {
	p, err := newPainter(win.IconDir, logger)
	if err != nil {
		return nil, err
	}
	return &Game{
		ctrl:    ctrl,
		model:   model,
		painter: p,
		theme:   theme,
		events:  events,
		log:     logger,
	}, nil
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, g *Game, win Window) error {
	g.done = ctx.Done()
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(win.MinWidth, win.MinHeight, -1, -1)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	st := g.model.View().State
	escape := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if escape && st.EditMode && !g.ctrl.Busy() {
		g.ctrl.Submit(widget.Command{Kind: widget.CmdCancelEditMode})
		escape = false
	}
	if escape || ebiten.IsWindowBeingClosed() || g.cancelled() {
		if err := g.ctrl.Close(); err != nil {
			g.log.Error("close failed", "error", err)
		}
		g.log.Info("window closed")
		return ebiten.Termination
	}

	g.handlePointer()
	if st.Kind == view.Editor && !g.ctrl.Busy() {
		g.handleKeys()
	}
	// Watcher commands queue behind this tick's input so an outside change
	// never replaces the buffer a keystroke was just applied to.
	g.drainEvents()

	dt := time.Second / time.Duration(ebiten.TPS())
	g.blink += dt
	g.ctrl.Update(dt)
	return nil
}

func (g *Game) cancelled() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

func (g *Game) drainEvents() {
	for {
		select {
		case cmd, ok := <-g.events:
			if !ok {
				g.events = nil
				return
			}
			g.ctrl.Submit(cmd)
		default:
			return
		}
	}
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	g.hover = g.model.HitTest(float64(x), float64(y))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if cmd, ok := g.hover.Command(); ok {
			g.ctrl.Submit(cmd)
		}
	}
	if _, wy := ebiten.Wheel(); wy != 0 && g.model.View().State.Kind == view.Gallery {
		g.model.Scroll(-wy * screen.ScrollStep)
	}
}

func (g *Game) handleKeys() {
	buf := g.model.Buffer()
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.ctrl.Submit(widget.Command{Kind: widget.CmdCreate})
		return
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.ctrl.Submit(widget.Command{Kind: widget.CmdZoomOut})
		return
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		if err := clipboard.WriteAll(buf.Text()); err != nil {
			g.log.Warn("copy failed", "error", err)
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		paste, err := clipboard.ReadAll()
		if err != nil {
			g.log.Warn("paste failed", "error", err)
		} else {
			buf.Insert(paste)
		}
	}

	for _, k := range editKeys {
		if inpututil.IsKeyJustPressed(k.key) || repeating(k.key) {
			buf.Apply(k.action)
			g.blink = 0
		}
	}
	if !ctrl {
		g.chars = ebiten.AppendInputChars(g.chars[:0])
		if len(g.chars) > 0 {
			buf.Type(g.chars)
			g.blink = 0
		}
	}

	if buf.Modified() {
		buf.ClearModified()
		g.ctrl.Submit(widget.Command{Kind: widget.CmdEdit, Text: buf.Text()})
	}
}

// repeating reports key repeat after a held delay.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d > 30 && d%3 == 0
}

func (g *Game) Draw(dst *ebiten.Image) {
	g.painter.dst = dst
	screen.Draw(g.model, g.painter, g.theme, screen.Decor{
		Hover:   g.hover,
		CaretOn: (g.blink/caretPeriod)%2 == 0,
	})
}

// Layout follows the window size and asks for a gallery relayout on change.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.model.Resize(outsideWidth, outsideHeight) {
		g.ctrl.Submit(widget.Command{Kind: widget.CmdResize})
	}
	return outsideWidth, outsideHeight
}
