// internal/ui/status_bar.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// Status is what the bar displays.
type Status struct {
	Level   string
	Wave    int
	MaxWave int
	Score   int
	Coins   int
	Lives   int
}

// StatusBar is a column of labelled values.
type StatusBar struct {
	X, Y       int
	LineHeight int
	Color      color.Color
}

func NewStatusBar(x, y int, clr color.Color) *StatusBar {
	return &StatusBar{X: x, Y: y, LineHeight: 18, Color: clr}
}

// Lines formats the status, top to bottom.
func (b *StatusBar) Lines(s Status) []string {
	return []string{
		s.Level,
		fmt.Sprintf("Wave: %d/%d", s.Wave, s.MaxWave),
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Coins: %d", s.Coins),
		fmt.Sprintf("Lives: %d", s.Lives),
	}
}

func (b *StatusBar) Draw(screen *ebiten.Image, s Status) {
	for i, line := range b.Lines(s) {
		text.Draw(screen, line, Face, b.X, b.Y+i*b.LineHeight, b.Color)
	}
}
