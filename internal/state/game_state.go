// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"go-towers/internal/config"
	"go-towers/internal/defs"
	"go-towers/internal/entity"
	"go-towers/internal/highscore"
	"go-towers/internal/session"
	"go-towers/internal/ui"
	"go-towers/pkg/gridmap"
	"go-towers/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameState runs the session and handles building input.
type GameState struct {
	sm       *StateMachine
	session  *session.Session
	store    *highscore.FileStore
	renderer *render.FieldRenderer

	palette     *ui.TowerPalette
	pauseButton *ui.PauseButton
	nextButton  *ui.Button
	statusBar   *ui.StatusBar

	ticker        *ticker
	lastClickTime time.Time
	message       string
}

func NewGameState(sm *StateMachine, sess *session.Session, store *highscore.FileStore, ticksPerSec int) *GameState {
	g := &GameState{
		sm:          sm,
		session:     sess,
		store:       store,
		renderer:    render.NewFieldRenderer(config.FieldOffsetX, config.FieldOffsetY, render.DefaultPalette()),
		palette:     ui.NewTowerPalette(400, 130, 180, 30),
		pauseButton: ui.NewPauseButton(575, 25, 10, config.TextLightColor, config.EntryColor),
		nextButton:  ui.NewButton(image.Rect(400, 330, 580, 360), "Next wave"),
		statusBar:   ui.NewStatusBar(400, 20, config.TextLightColor),
		ticker:      newTicker(ticksPerSec),
	}
	return g
}

func (g *GameState) Enter() {
	g.refreshShop()
	g.ticker.Reset()
}

func (g *GameState) Exit() {}

func (g *GameState) Update(deltaTime float64) {
	if g.session.Over() {
		g.sm.SetState(NewGameOverState(g.sm, g))
		return
	}
	if g.session.Paused {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.session.SetPaused(true)
		g.pauseButton.Toggle()
		return
	}
	if g.handleInput() {
		return
	}
	for n := g.ticker.Due(deltaTime); n > 0; n-- {
		if !g.session.Tick() {
			break
		}
	}
	g.palette.Refresh(g.session.Coins)
}

// handleInput processes clicks and keys shared by the running and paused screens.
// It reports true when the state changed.
func (g *GameState) handleInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sm.SetState(NewMenuState(g.sm, g))
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.nextWave()
	}

	x, y := ebiten.CursorPosition()
	if time.Since(g.lastClickTime) < time.Duration(config.ClickCooldown)*time.Millisecond {
		return false
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.lastClickTime = time.Now()
		return g.handleLeftClick(x, y)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		g.lastClickTime = time.Now()
		g.sell(g.cellAt(x, y))
	}
	return false
}

func (g *GameState) handleLeftClick(x, y int) bool {
	switch {
	case g.pauseButton.IsClicked(x, y):
		g.pauseButton.Toggle()
		g.session.TogglePaused()
		return true
	case g.nextButton.IsClicked(x, y):
		g.nextWave()
	case g.palette.Contains(x, y):
		g.palette.HandleClick(x, y)
		g.palette.Refresh(g.session.Coins)
	default:
		g.buildOrUpgrade(g.cellAt(x, y))
	}
	return false
}

func (g *GameState) cellAt(x, y int) gridmap.Cell {
	return g.session.Game.Grid.PixelToCell(g.renderer.FromScreen(x, y))
}

func (g *GameState) buildOrUpgrade(cell gridmap.Cell) {
	if !g.session.Game.Grid.Contains(cell) {
		return
	}
	var err error
	if _, ok := g.session.Game.Tower(cell); ok {
		err = g.session.Upgrade(cell)
	} else {
		err = g.session.Buy(cell, g.palette.Selected)
	}
	g.report(err)
	g.palette.Refresh(g.session.Coins)
}

func (g *GameState) sell(cell gridmap.Cell) {
	refund, err := g.session.Sell(cell)
	if errors.Is(err, session.ErrNoTower) {
		return
	}
	g.report(err)
	if err == nil {
		g.message = fmt.Sprintf("Sold for %d", refund)
	}
	g.palette.Refresh(g.session.Coins)
}

func (g *GameState) nextWave() {
	if !g.session.NextWave() {
		g.message = "No more waves"
	}
	g.nextButton.Enabled = g.session.Wave < g.session.MaxWave
}

func (g *GameState) report(err error) {
	if err == nil {
		g.message = ""
		return
	}
	g.message = err.Error()
	log.Printf("Session %s: %v", g.session.ID, err)
}

// refreshShop rebuilds the palette for the current level's prices.
func (g *GameState) refreshShop() {
	entries := make([]ui.PaletteEntry, 0, len(defs.TowerOrder))
	for _, kind := range defs.TowerOrder {
		price, err := g.session.Price(kind)
		if err != nil {
			continue
		}
		entries = append(entries, ui.PaletteEntry{Kind: kind, Name: defs.TowerLibrary[kind].Name, Price: price})
	}
	g.palette.SetEntries(entries)
	g.palette.Refresh(g.session.Coins)
	g.pauseButton.SetPaused(g.session.Paused)
	g.nextButton.Enabled = g.session.Wave < g.session.MaxWave
}

func (g *GameState) Draw(screen *ebiten.Image) {
	game := g.session.Game
	g.renderer.Draw(screen, game)

	x, y := ebiten.CursorPosition()
	at := g.renderer.FromScreen(x, y)
	def, ok := defs.TowerLibrary[g.palette.Selected]
	if ok && g.session.CanAfford(def.ID) && game.Grid.Contains(game.Grid.PixelToCell(at)) {
		legal, path := game.AttemptPlacement(at)
		g.renderer.DrawPreview(screen, game, at, def, legal, path)
	}

	g.statusBar.Draw(screen, ui.Status{
		Level:   g.session.LevelID,
		Wave:    g.session.Wave,
		MaxWave: g.session.MaxWave,
		Score:   g.session.Score,
		Coins:   g.session.Coins,
		Lives:   g.session.Lives,
	})
	g.palette.Draw(screen)
	g.nextButton.Draw(screen)
	g.pauseButton.Draw(screen)

	ebitenutil.DebugPrintAt(screen, "Space: pause  N: next wave  Esc: levels", config.FieldOffsetX, 10)
	if t, ok := game.Tower(g.cellAt(x, y)); ok {
		ebitenutil.DebugPrintAt(screen, describeTower(t), config.FieldOffsetX, 30)
	} else if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, config.FieldOffsetX, 30)
	}
}

func describeTower(t *entity.Tower) string {
	s := fmt.Sprintf("%s L%d  dmg %d  value %d", t.Def.Name, t.Level, t.Damage(), t.Value())
	if t.Aged {
		s += "  (aged)"
	}
	return s
}
