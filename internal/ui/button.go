// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face is the HUD font.
var Face font.Face = basicfont.Face7x13

// Button is a clickable labelled rectangle.
type Button struct {
	Rect      image.Rectangle
	Label     string
	Enabled   bool
	Active    bool
	TextColor color.Color
	BgColor   color.Color
}

// NewButton creates an enabled button.
func NewButton(rect image.Rectangle, label string) *Button {
	return &Button{
		Rect:      rect,
		Label:     label,
		Enabled:   true,
		TextColor: color.Black,
		BgColor:   color.RGBA{200, 200, 200, 255},
	}
}

// Contains reports whether the point lies on the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// IsClicked reports a click on an enabled button.
func (b *Button) IsClicked(x, y int) bool {
	return b.Enabled && b.Contains(x, y)
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BgColor
	if !b.Enabled {
		bg = color.RGBA{120, 120, 120, 255}
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)

	border := color.RGBA{60, 60, 60, 255}
	if b.Active {
		border = color.RGBA{255, 215, 0, 255}
	}
	vector.StrokeRect(screen, x, y, w, h, 2, border, true)

	bounds := text.BoundString(Face, b.Label)
	tx := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	ty := b.Rect.Min.Y + (b.Rect.Dy()+bounds.Dy())/2
	text.Draw(screen, b.Label, Face, tx, ty, b.TextColor)
}
