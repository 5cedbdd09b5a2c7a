// internal/state/menu_state.go
package state

import (
	"fmt"
	"image"
	"image/color"

	"go-towers/internal/defs"
	"go-towers/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuState picks a difficulty. Choosing one starts a new game on it.
type MenuState struct {
	sm      *StateMachine
	game    *GameState
	buttons []*ui.Button
	levels  []string
	err     string
}

func NewMenuState(sm *StateMachine, game *GameState) *MenuState {
	m := &MenuState{sm: sm, game: game, levels: defs.LevelOrder}
	for i, id := range m.levels {
		top := 120 + i*50
		label := fmt.Sprintf("%d. %s", i+1, defs.LevelLibrary[id].Name)
		m.buttons = append(m.buttons, ui.NewButton(image.Rect(180, top, 420, top+36), label))
	}
	return m
}

func (m *MenuState) Enter() {
	for i, b := range m.buttons {
		b.Active = m.levels[i] == m.game.session.LevelID
	}
}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.sm.SetState(m.game)
		return
	}
	for i := range m.levels {
		if i < 9 && inpututil.IsKeyJustPressed(ebiten.KeyDigit1+ebiten.Key(i)) {
			m.choose(i)
			return
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		for i, b := range m.buttons {
			if b.IsClicked(x, y) {
				m.choose(i)
				return
			}
		}
	}
}

func (m *MenuState) choose(i int) {
	if err := m.game.session.ChangeLevel(m.levels[i]); err != nil {
		m.err = err.Error()
		return
	}
	m.sm.SetState(m.game)
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})
	ebitenutil.DebugPrintAt(screen, "Choose a level (Esc to go back)", 180, 80)
	for _, b := range m.buttons {
		b.Draw(screen)
	}
	if m.err != "" {
		ebitenutil.DebugPrintAt(screen, m.err, 180, 300)
	}
}

func (m *MenuState) Exit() {}
