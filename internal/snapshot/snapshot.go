// Package snapshot renders transition frames to PNG files without opening
// a window. Notes are read but never written.
package snapshot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/raster"
	"github.com/starford/stickynote/internal/sched"
	"github.com/starford/stickynote/internal/screen"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/widget"
)

// Options selects what to render.
type Options struct {
	Direction transition.Direction
	// Note is the focus note; empty means the active note.
	Note   models.NoteID
	Frames []int
	Width  int
	Height int
	Dir    string
	Theme  screen.Theme
}

// readOnly drops every write so a snapshot leaves the store untouched.
type readOnly struct {
	widget.Gateway
}

func (readOnly) SaveState([]models.NoteID, models.NoteID) error { return nil }
func (readOnly) SaveNoteText(models.NoteID, string) error     { return nil }
func (readOnly) DeleteNote(models.NoteID) error               { return nil }

func (readOnly) CreateNote(string) (models.NoteID, error) {
	return "", errors.New("snapshot: store is read-only")
}

// previewer keeps the gateway's indexed previews visible through readOnly.
type previewer struct {
	readOnly
	p widget.Previewer
}

func (p previewer) Previews(ids []models.NoteID) (map[models.NoteID]string, error) {
	return p.p.Previews(ids)
}

// recorder renders the frames it is asked for as they are painted.
type recorder struct {
	*screen.Model
	opts    Options
	on      bool
	wanted  map[int]bool
	written []string
	err     error
}

func (r *recorder) PaintFrame(f transition.Frame) {
	r.Model.PaintFrame(f)
	if !r.on || r.err != nil || (len(r.wanted) > 0 && !r.wanted[f.Step]) {
		return
	}
	r.save(fmt.Sprintf("%s_%03d.png", r.opts.Direction, f.Step))
}

func (r *recorder) save(name string) {
	path := filepath.Join(r.opts.Dir, name)
	if err := raster.SavePNG(path, r.Model, r.opts.Theme); err != nil {
		r.err = err
		return
	}
	r.written = append(r.written, path)
}

// Render plays one transition against gw and writes the selected frames
// plus the settled view afterwards. It returns the files written.
func Render(gw widget.Gateway, cfg widget.Config, opts Options, logger *slog.Logger) ([]string, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: mkdir: %w", err)
	}

	var ro widget.Gateway = readOnly{gw}
	if p, ok := gw.(widget.Previewer); ok {
		ro = previewer{readOnly{gw}, p}
	}

	rec := &recorder{Model: screen.New(cfg.Metrics, opts.Width, opts.Height), opts: opts}
	if len(opts.Frames) > 0 {
		rec.wanted = make(map[int]bool, len(opts.Frames))
		for _, f := range opts.Frames {
			rec.wanted[f] = true
		}
	}

	ctrl, err := widget.New(cfg, widget.Deps{Gateway: ro, Surface: rec, Scheduler: sched.New(), Logger: logger})
	if err != nil {
		return nil, err
	}
	focus := opts.Note
	if focus == "" {
		focus = ctrl.Active()
	}
	if models.IndexOf(ctrl.Order(), focus) < 0 {
		return nil, fmt.Errorf("snapshot: note %s: %w", focus, apperr.ErrNotFound)
	}

	switch opts.Direction {
	case transition.Out:
		if focus != ctrl.Active() {
			if err := openInEditor(ctrl, focus); err != nil {
				return nil, err
			}
		}
		rec.on = true
		err = ctrl.ZoomOut()
	case transition.In:
		if err := ctrl.ZoomOut(); err != nil {
			return nil, err
		}
		settle(ctrl)
		rec.on = true
		err = ctrl.Select(focus)
	default:
		return nil, fmt.Errorf("snapshot: direction %q: %w", opts.Direction, apperr.ErrInvalidTransition)
	}
	if err != nil {
		return nil, err
	}

	settle(ctrl)
	if rec.err != nil {
		return rec.written, rec.err
	}
	rec.save(fmt.Sprintf("%s_final.png", opts.Direction))
	return rec.written, rec.err
}

// openInEditor brings id into the editor without recording frames.
func openInEditor(ctrl *widget.Controller, id models.NoteID) error {
	if err := ctrl.ZoomOut(); err != nil {
		return err
	}
	settle(ctrl)
	if err := ctrl.Select(id); err != nil {
		return err
	}
	settle(ctrl)
	return nil
}

func settle(ctrl *widget.Controller) {
	for i := 0; ctrl.Busy() && i < 1000; i++ {
		ctrl.Update(10 * time.Millisecond)
	}
}

// ParseFrames reads a comma separated step list. Empty means every frame.
func ParseFrames(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("snapshot: bad frame %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
