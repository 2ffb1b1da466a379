package screen

import (
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/transition"
)

// Theme holds the fixed window colors and text sizes.
type Theme struct {
	EditorBG  geom.Color
	GalleryBG geom.Color
	ThumbFill geom.Color
	Text      geom.Color
	Cursor    geom.Color
	Hover     geom.Color
	Badge     geom.Color

	ThumbRadius   float64
	FontSize      float64
	ThumbFontSize float64
}

// DefaultTheme derives the theme from the transition palette so the
// animation starts and ends on the real colors.
func DefaultTheme(pal transition.Palette) Theme {
	return Theme{
		EditorBG:      pal.EditorBG,
		GalleryBG:     pal.GalleryBG,
		ThumbFill:     pal.CardFill,
		Text:          pal.Text,
		Cursor:        geom.MustHex("#a5c73a"),
		Hover:         geom.MustHex("#b6d872"),
		Badge:         geom.MustHex("#7a2e1f"),
		ThumbRadius:   16,
		FontSize:      16,
		ThumbFontSize: 12,
	}
}
