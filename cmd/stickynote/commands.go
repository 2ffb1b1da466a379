package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/starford/stickynote/internal"
	"github.com/starford/stickynote/internal/gallery"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/index"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/screen"
	"github.com/starford/stickynote/internal/snapshot"
	"github.com/starford/stickynote/internal/transition"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a5c73a"))
	focusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b6d872"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d7e9b0"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// openEnv opens the store with logs on stderr so command output stays clean.
func openEnv(cmd *cli.Command) (*internal.Config, *internal.Env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	env, err := internal.OpenEnv(cfg, internal.NewLogger(os.Stderr, cfg.App.LogLevel))
	if err != nil {
		return nil, nil, err
	}
	return cfg, env, nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the notes in gallery order",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "width",
				Usage: "Window width the gallery is laid out for (default: configured width)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			width := cfg.Window.Width
			if w := int(cmd.Int("width")); w > 0 {
				width = w
			}
			wc, err := cfg.Widget()
			if err != nil {
				return err
			}
			notes, err := env.Notes.Notes()
			if err != nil {
				return err
			}
			canvas := wc.Metrics.GalleryCanvas(geom.XYWH(0, 0, float64(width), float64(cfg.Window.Height)))
			layout := gallery.Compute(wc.Gallery, int(canvas.Width()), env.State.Order, env.State.Active, false)
			printLayout(os.Stdout, layout, env.State.Active, notes)
			return nil
		},
	}
}

func printLayout(w io.Writer, layout gallery.Layout, focus models.NoteID, notes []models.NoteMetadata) {
	previews := make(map[models.NoteID]string, len(notes))
	for _, n := range notes {
		previews[n.ID] = n.Preview
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d notes, %d columns", len(layout.Order), layout.Columns)))
	for i, id := range layout.Order {
		row, col := i/layout.Columns, i%layout.Columns
		marker, style := "  ", idStyle
		if id == focus {
			marker, style = "> ", focusStyle
		}
		fmt.Fprintf(w, "%s%s %s %s\n",
			marker,
			dimStyle.Render(fmt.Sprintf("[%d,%d]", row, col)),
			style.Render(string(id)),
			firstLine(previews[id]))
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search note text",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum results"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("search: query is required")
			}
			_, env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			results, err := env.Notes.Search(query, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			printResults(os.Stdout, query, results)
			return nil
		},
	}
}

func printResults(w io.Writer, query string, results []index.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("no notes match %q", query)))
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s %s\n", idStyle.Render(string(r.ID)), headerStyle.Render(r.Title))
		fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(r.Snippet, "\n", " "))
	}
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Render transition frames to PNG files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "direction", Value: "out", Usage: "out (editor to gallery) or in"},
			&cli.StringFlag{Name: "note", Usage: "Focus note id (default: active note)"},
			&cli.StringFlag{Name: "frames", Usage: "Comma separated frame steps (default: all)"},
			&cli.StringFlag{Name: "out", Value: "snapshots", Usage: "Output directory"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir, err := transition.ParseDirection(strings.ToLower(cmd.String("direction")))
			if err != nil {
				return err
			}
			frames, err := snapshot.ParseFrames(cmd.String("frames"))
			if err != nil {
				return err
			}
			cfg, env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			wc, err := cfg.Widget()
			if err != nil {
				return err
			}
			theme := screen.DefaultTheme(wc.Palette)
			theme.FontSize = cfg.Editor.FontSize

			files, err := snapshot.Render(env.Notes, wc, snapshot.Options{
				Direction: dir,
				Note:      models.NoteID(cmd.String("note")),
				Frames:    frames,
				Width:     cfg.Window.Width,
				Height:    cfg.Window.Height,
				Dir:       cmd.String("out"),
				Theme:     theme,
			}, internal.NewLogger(os.Stderr, cfg.App.LogLevel))
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(os.Stdout, f)
			}
			return nil
		},
	}
}
