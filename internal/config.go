package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/stickynote/internal/gallery"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/widget"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Data      DataConfig        `yaml:"data"`
	Window    WindowConfig      `yaml:"window"`
	Animation AnimationConfig   `yaml:"animation"`
	Gallery   GalleryConfig     `yaml:"gallery"`
	Editor    EditorConfig      `yaml:"editor"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Window.Validate(); err != nil {
		return err
	}
	if err := c.Animation.Validate(); err != nil {
		return err
	}
	if err := c.Gallery.Validate(); err != nil {
		return err
	}
	return c.Editor.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// DataConfig locates the note store.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// NotesDir is where note files live.
func (c *DataConfig) NotesDir() string { return filepath.Join(c.Dir, "notes") }

// DBPath is the SQLite index file.
func (c *DataConfig) DBPath() string { return filepath.Join(c.Dir, "state.db") }

// CacheDir holds rendered icons.
func (c *DataConfig) CacheDir() string { return filepath.Join(c.Dir, "cache") }

// WindowConfig holds the host window settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
}

// Validate validates the window configuration.
func (c *WindowConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MinWidth, validation.Required, validation.Min(200)),
		validation.Field(&c.MinHeight, validation.Required, validation.Min(150)),
		validation.Field(&c.Width, validation.Required, validation.Min(c.MinWidth)),
		validation.Field(&c.Height, validation.Required, validation.Min(c.MinHeight)),
	)
}

// AnimationConfig tunes the editor/gallery morph.
type AnimationConfig struct {
	Duration      time.Duration `yaml:"duration"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	MaxCards      int           `yaml:"max_cards"`
	Easing        string        `yaml:"easing"`
}

// Validate validates the animation configuration.
func (c *AnimationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Duration, validation.Required, validation.Min(time.Millisecond), validation.Max(5*time.Second)),
		validation.Field(&c.FrameInterval, validation.Required, validation.Min(time.Millisecond), validation.Max(c.Duration)),
		validation.Field(&c.MaxCards, validation.Required, validation.Min(1)),
		validation.Field(&c.Easing, validation.In(anySlice(geom.EasingNames())...)),
	)
}

// GalleryConfig sizes the thumbnail grid.
type GalleryConfig struct {
	MinCellWidth  int `yaml:"min_cell_width"`
	MaxCellWidth  int `yaml:"max_cell_width"`
	Gutter        int `yaml:"gutter"`
	MinCellHeight int `yaml:"min_cell_height"`
}

// Validate validates the gallery configuration.
func (c *GalleryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MinCellWidth, validation.Required, validation.Min(40)),
		validation.Field(&c.MaxCellWidth, validation.Required, validation.Min(c.MinCellWidth)),
		validation.Field(&c.Gutter, validation.Min(0)),
		validation.Field(&c.MinCellHeight, validation.Required, validation.Min(20)),
	)
}

// EditorConfig holds the text editor settings.
type EditorConfig struct {
	SaveDebounce time.Duration `yaml:"save_debounce"`
	FontSize     float64       `yaml:"font_size"`
}

// Validate validates the editor configuration.
func (c *EditorConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SaveDebounce, validation.Min(time.Duration(0))),
		validation.Field(&c.FontSize, validation.Required, validation.Min(6.0), validation.Max(72.0)),
	)
}

// Widget builds the controller settings.
func (c *Config) Widget() (widget.Config, error) {
	easing, err := geom.EasingByName(c.Animation.Easing)
	if err != nil {
		return widget.Config{}, err
	}
	wc := widget.DefaultConfig()
	wc.Transition.Duration = c.Animation.Duration
	wc.Transition.FrameInterval = c.Animation.FrameInterval
	wc.Transition.MaxCards = c.Animation.MaxCards
	wc.Transition.Easing = easing
	wc.Gallery = gallery.Params{
		MinCellWidth:  c.Gallery.MinCellWidth,
		MaxCellWidth:  c.Gallery.MaxCellWidth,
		Gutter:        c.Gallery.Gutter,
		MinCellHeight: c.Gallery.MinCellHeight,
		Aspect:        float64(c.Window.Width) / float64(c.Window.Height),
	}
	wc.SaveDelay = c.Editor.SaveDebounce
	return wc, nil
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// DefaultDataDir is $XDG_DATA_HOME/sticky-note, falling back to
// ~/.local/share/sticky-note.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "sticky-note")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sticky-note"
	}
	return filepath.Join(home, ".local", "share", "sticky-note")
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	tc := transition.DefaultConfig()
	gp := gallery.DefaultParams()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Data: DataConfig{
			Dir: DefaultDataDir(),
		},
		Window: WindowConfig{
			Title:     "Sticky Note",
			Width:     860,
			Height:    620,
			MinWidth:  560,
			MinHeight: 380,
		},
		Animation: AnimationConfig{
			Duration:      tc.Duration,
			FrameInterval: tc.FrameInterval,
			MaxCards:      tc.MaxCards,
			Easing:        geom.DefaultEasing,
		},
		Gallery: GalleryConfig{
			MinCellWidth:  gp.MinCellWidth,
			MaxCellWidth:  gp.MaxCellWidth,
			Gutter:        gp.Gutter,
			MinCellHeight: gp.MinCellHeight,
		},
		Editor: EditorConfig{
			SaveDebounce: 250 * time.Millisecond,
			FontSize:     16,
		},
	}
}
