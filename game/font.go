package game

import (
	"bytes"
	"log"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// GameFont is the singleton text face source the render systems share.
// Faces are cheap views over the source, so they are built per size on
// demand.
type GameFont struct {
	source *text.GoTextFaceSource
}

// NewGameFont parses the bundled typeface. The font ships with the binary,
// so a parse failure is a build defect and fatal.
func NewGameFont() GameFont {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("game: parsing bundled font: %v", err)
	}
	return GameFont{source: source}
}

// Face returns a text face of the given size.
func (f *GameFont) Face(size float64) text.Face {
	return &text.GoTextFace{Source: f.source, Size: size}
}
