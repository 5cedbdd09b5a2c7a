// internal/ui/palette.go
package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// PaletteEntry is one purchasable tower kind.
type PaletteEntry struct {
	Kind  string
	Name  string
	Price int
}

// TowerPalette is the shop: one button per tower kind, stacked vertically.
// Kinds the player cannot afford are drawn with red text.
type TowerPalette struct {
	X, Y          int
	Width, Height int
	Gap           int
	Selected      string

	entries []PaletteEntry
	buttons []*Button
}

func NewTowerPalette(x, y, width, height int) *TowerPalette {
	return &TowerPalette{X: x, Y: y, Width: width, Height: height, Gap: 6}
}

// SetEntries rebuilds the buttons. The first entry is selected if nothing valid is.
func (p *TowerPalette) SetEntries(entries []PaletteEntry) {
	p.entries = entries
	p.buttons = p.buttons[:0]
	found := false
	for i, e := range entries {
		top := p.Y + i*(p.Height+p.Gap)
		rect := image.Rect(p.X, top, p.X+p.Width, top+p.Height)
		p.buttons = append(p.buttons, NewButton(rect, fmt.Sprintf("%s %d", e.Name, e.Price)))
		if e.Kind == p.Selected {
			found = true
		}
	}
	if !found && len(entries) > 0 {
		p.Selected = entries[0].Kind
	}
}

// Refresh marks unaffordable kinds and highlights the selection.
func (p *TowerPalette) Refresh(coins int) {
	for i, b := range p.buttons {
		e := p.entries[i]
		b.Active = e.Kind == p.Selected
		if e.Price > coins {
			b.TextColor = color.RGBA{200, 0, 0, 255}
		} else {
			b.TextColor = color.Black
		}
	}
}

// HandleClick selects the kind under the cursor.
func (p *TowerPalette) HandleClick(x, y int) (string, bool) {
	for i, b := range p.buttons {
		if b.IsClicked(x, y) {
			p.Selected = p.entries[i].Kind
			return p.Selected, true
		}
	}
	return "", false
}

// Contains reports whether the point is on any palette button.
func (p *TowerPalette) Contains(x, y int) bool {
	for _, b := range p.buttons {
		if b.Contains(x, y) {
			return true
		}
	}
	return false
}

func (p *TowerPalette) Draw(screen *ebiten.Image) {
	for _, b := range p.buttons {
		b.Draw(screen)
	}
}
