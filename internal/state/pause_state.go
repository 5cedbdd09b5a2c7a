// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-towers/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ State = (*PauseState)(nil)

// PauseState freezes the simulation but still lets the player build.
type PauseState struct {
	stateMachine *StateMachine
	game         *GameState
}

func NewPauseState(sm *StateMachine, game *GameState) *PauseState {
	return &PauseState{stateMachine: sm, game: game}
}

func (s *PauseState) Enter() {
	s.game.pauseButton.SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.resume()
		return
	}
	if s.game.handleInput() {
		// The pause button toggles the session itself.
		if !s.game.session.Paused && s.stateMachine.Current() == State(s) {
			s.stateMachine.SetState(s.game)
		}
		return
	}
	if !s.game.session.Paused {
		s.stateMachine.SetState(s.game)
	}
}

func (s *PauseState) resume() {
	s.game.session.SetPaused(false)
	s.game.pauseButton.Toggle()
	s.stateMachine.SetState(s.game)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
	w, h := float32(config.GridCols*config.CellSize), float32(config.GridRows*config.CellSize)
	vector.DrawFilledRect(screen, config.FieldOffsetX, config.FieldOffsetY, w, h, color.RGBA{0, 0, 0, 60}, false)
	ebitenutil.DebugPrintAt(screen, "PAUSED", config.FieldOffsetX+int(w)/2-18, config.FieldOffsetY+int(h)+8)
}

func (s *PauseState) Exit() {}
