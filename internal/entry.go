// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/stickynote/internal/desktop"
	"github.com/starford/stickynote/internal/index"
	"github.com/starford/stickynote/internal/notify"
	"github.com/starford/stickynote/internal/sched"
	"github.com/starford/stickynote/internal/screen"
	"github.com/starford/stickynote/internal/widget"
)

// coalesceWindow collapses the burst of writes an editor makes per save.
const coalesceWindow = 100 * time.Millisecond

// Run opens the note store and shows the widget window until it is closed
// or a shutdown signal arrives. It must be called from the main goroutine.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := app.logger
	if logger == nil {
		logger = NewLogger(os.Stderr, cfg.App.LogLevel)
	}
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.Duration("animation", cfg.Animation.Duration))

	env, err := OpenEnv(cfg, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	wc, err := cfg.Widget()
	if err != nil {
		return fmt.Errorf("widget config: %w", err)
	}

	model := screen.New(wc.Metrics, cfg.Window.Width, cfg.Window.Height)
	ctrl, err := widget.New(wc, widget.Deps{
		Gateway:   env.Notes,
		Surface:   model,
		Scheduler: sched.New(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("init widget: %w", err)
	}

	theme := screen.DefaultTheme(wc.Palette)
	theme.FontSize = cfg.Editor.FontSize
	win := desktop.Window{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		MinWidth:  cfg.Window.MinWidth,
		MinHeight: cfg.Window.MinHeight,
		IconDir:   cfg.Data.CacheDir(),
	}

	broker := notify.NewBroker(coalesceWindow)
	defer broker.Close()
	events := broker.Subscribe()

	game, err := desktop.NewGame(ctrl, model, theme, win, events, logger)
	if err != nil {
		return fmt.Errorf("init window: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watchCtx, cancelWatch := context.WithCancel(ctx)
	g, gCtx := errgroup.WithContext(watchCtx)

	g.Go(func() error {
		err := index.Watch(gCtx, env.DB, env.Store, env.Store.NotesRoot(), logger, broker.PublishNoteEvent)
		if err != nil {
			logger.Error("watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	logger.Info("Window opening", slog.Int("notes", len(env.State.Order)), slog.String("active", string(env.State.Active)))

	runErr := desktop.Run(ctx, game, win)
	cancelWatch()
	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}
	if runErr != nil {
		logger.Error("Window error", slog.String("error", runErr.Error()))
		return runErr
	}

	logger.Info("Window closed")
	return nil
}
