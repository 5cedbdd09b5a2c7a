// pkg/render/field.go
package render

import (
	"image/color"
	"math"

	"go-towers/internal/app"
	"go-towers/internal/defs"
	"go-towers/internal/entity"
	"go-towers/pkg/gridmap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FieldRenderer draws the playfield, translated by an offset inside the window.
type FieldRenderer struct {
	OffsetX, OffsetY float64
	Colors           Palette
}

func NewFieldRenderer(offsetX, offsetY float64, colors Palette) *FieldRenderer {
	return &FieldRenderer{OffsetX: offsetX, OffsetY: offsetY, Colors: colors}
}

// ToScreen converts a field pixel position to window coordinates.
func (r *FieldRenderer) ToScreen(p gridmap.Point) (float32, float32) {
	return float32(p.X + r.OffsetX), float32(p.Y + r.OffsetY)
}

// FromScreen converts window coordinates to a field pixel position.
func (r *FieldRenderer) FromScreen(x, y int) gridmap.Point {
	return gridmap.Point{X: float64(x) - r.OffsetX, Y: float64(y) - r.OffsetY}
}

// Draw renders one snapshot of the game.
func (r *FieldRenderer) Draw(screen *ebiten.Image, g *app.Game) {
	screen.Fill(r.Colors.Background)
	r.drawCells(screen, g)
	for _, t := range g.TowerList() {
		r.drawTower(screen, g.Grid, t)
	}
	for _, e := range g.Enemies() {
		r.drawEnemy(screen, g.Grid, e)
	}
	for _, p := range g.Projectiles() {
		x, y := r.ToScreen(p.Position())
		vector.DrawFilledCircle(screen, x, y, 3, r.Colors.Projectile, true)
	}
	for _, seg := range g.Grid.BorderLines() {
		x0, y0 := r.ToScreen(seg.From)
		x1, y1 := r.ToScreen(seg.To)
		vector.StrokeLine(screen, x0, y0, x1, y1, r.Colors.Stroke, r.Colors.Text, true)
	}
}

// DrawPreview shows where a tower would go and the path enemies would then take.
func (r *FieldRenderer) DrawPreview(screen *ebiten.Image, g *app.Game, at gridmap.Point, def defs.TowerDefinition, legal bool, path []gridmap.Cell) {
	cell := g.Grid.PixelToCell(at)
	if !g.Grid.Contains(cell) {
		return
	}
	for i := 1; i < len(path); i++ {
		x0, y0 := r.ToScreen(g.Grid.CellToPixelCentre(path[i-1]))
		x1, y1 := r.ToScreen(g.Grid.CellToPixelCentre(path[i]))
		vector.StrokeLine(screen, x0, y0, x1, y1, 4, r.Colors.Path, true)
	}

	cx, cy := r.ToScreen(g.Grid.CellToPixelCentre(cell))
	radius := float32(g.Grid.CellSize * def.Visuals.Size / 2)
	if legal {
		vector.DrawFilledCircle(screen, cx, cy, radius, WithAlpha(def.Visuals.Color, 128), true)
		if def.Range.Shape == defs.RangeCircle {
			vector.StrokeCircle(screen, cx, cy, float32(def.Range.Radius*g.Grid.CellSize), 1, r.Colors.Text, true)
		}
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, radius, r.Colors.Illegal, true)
}

func (r *FieldRenderer) drawCells(screen *ebiten.Image, g *app.Game) {
	size := float32(g.Grid.CellSize)
	occupied := g.Grid.Occupied()
	for _, c := range g.Grid.Cells() {
		fill := r.Colors.Passable
		if o, ok := occupied[c]; ok && o.Kind == gridmap.Obstacle {
			fill = r.Colors.Obstacle
		}
		x, y := r.ToScreen(gridmap.Point{X: float64(c.X) * g.Grid.CellSize, Y: float64(c.Y) * g.Grid.CellSize})
		vector.DrawFilledRect(screen, x+1, y+1, size-2, size-2, fill, true)
	}
	for _, s := range g.PathFinder.Spawns() {
		r.fillCell(screen, g.Grid, s, r.Colors.Entry)
	}
	r.fillCell(screen, g.Grid, g.PathFinder.Goal(), r.Colors.Exit)
}

func (r *FieldRenderer) fillCell(screen *ebiten.Image, grid *gridmap.Grid, c gridmap.Cell, clr color.RGBA) {
	size := float32(grid.CellSize)
	x, y := r.ToScreen(gridmap.Point{X: float64(c.X) * grid.CellSize, Y: float64(c.Y) * grid.CellSize})
	vector.DrawFilledRect(screen, x+size/4, y+size/4, size/2, size/2, clr, true)
}

func (r *FieldRenderer) drawTower(screen *ebiten.Image, grid *gridmap.Grid, t *entity.Tower) {
	cx, cy := r.ToScreen(t.Position)
	radius := float32(grid.CellSize * t.Def.Visuals.Size / 2)
	body := t.Def.Visuals.Color
	if t.Aged {
		body = DarkenColor(body)
	}
	vector.DrawFilledCircle(screen, cx, cy, radius, body, true)

	// Barrel points along the tower's rotation.
	bx := cx + radius*float32(math.Cos(t.Rotation))
	by := cy + radius*float32(math.Sin(t.Rotation))
	vector.StrokeLine(screen, cx, cy, bx, by, 3, DarkenColor(body), true)

	if t.IsOnCooldown() && t.Cooldown.Period() > 0 {
		frac := float32(t.Cooldown.Progress()) / float32(t.Cooldown.Period())
		vector.DrawFilledRect(screen, cx-radius, cy+radius+2, 2*radius*frac, 3, r.Colors.Text, true)
	}
}

func (r *FieldRenderer) drawEnemy(screen *ebiten.Image, grid *gridmap.Grid, e *entity.Enemy) {
	side := float32(grid.CellSize * e.Size)
	x, y := r.ToScreen(e.Position)
	vector.DrawFilledRect(screen, x-side/2, y-side/2, side, side, e.Color, true)

	if full := e.Def.Health; full > 0 {
		frac := float32(e.Health) / float32(full)
		vector.DrawFilledRect(screen, x-side/2, y-side/2-4, side*frac, 2, r.Colors.Entry, true)
	}
}
