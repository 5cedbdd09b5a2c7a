// pkg/render/color.go
package render

import (
	"image/color"

	"go-towers/internal/config"
)

// Palette holds the colours of the playfield.
type Palette struct {
	Background color.RGBA
	Passable   color.RGBA
	Obstacle   color.RGBA
	Entry      color.RGBA
	Exit       color.RGBA
	Path       color.RGBA
	Illegal    color.RGBA
	Projectile color.RGBA
	Text       color.RGBA
	Stroke     float32
}

// DefaultPalette reads the colours from config.
func DefaultPalette() Palette {
	return Palette{
		Background: config.BackgroundColor,
		Passable:   config.PassableColor,
		Obstacle:   config.ImpassableColor,
		Entry:      config.EntryColor,
		Exit:       config.ExitColor,
		Path:       config.PathColor,
		Illegal:    config.IllegalColor,
		Projectile: config.ProjectileColor,
		Text:       config.TextLightColor,
		Stroke:     float32(config.StrokeWidth),
	}
}

// DarkenColor halves the brightness of a colour.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// WithAlpha returns c with a different alpha.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
