// internal/state/game_over_state.go
package state

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"unicode"

	"go-towers/internal/event"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const maxNameLength = 12

// GameOverState announces the outcome and takes a name for the high-score table.
type GameOverState struct {
	sm       *StateMachine
	game     *GameState
	entering bool
	name     string
	chars    []rune
}

func NewGameOverState(sm *StateMachine, game *GameState) *GameOverState {
	return &GameOverState{sm: sm, game: game}
}

func (s *GameOverState) Enter() {
	s.entering = s.game.session.QualifiesForHighScore()
	s.name = ""
}

func (s *GameOverState) Update(deltaTime float64) {
	if s.entering {
		s.chars = ebiten.AppendInputChars(s.chars[:0])
		if (ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)) && inpututil.IsKeyJustPressed(ebiten.KeyV) {
			if pasted, err := clipboard.ReadAll(); err == nil {
				s.chars = append(s.chars, []rune(pasted)...)
			}
		}
		s.name = editName(s.name, s.chars, inpututil.IsKeyJustPressed(ebiten.KeyBackspace))
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.submit()
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.game.session.NewGame()
		s.sm.SetState(s.game)
	}
}

func (s *GameOverState) submit() {
	name := strings.TrimSpace(s.name)
	if name == "" {
		name = "Anonymous"
	}
	if _, err := s.game.session.RecordHighScore(name); err != nil {
		log.Printf("High score not recorded: %v", err)
	}
	if s.game.store != nil {
		if err := s.game.store.Save(s.game.session.Scores); err != nil {
			log.Printf("High scores not saved: %v", err)
		}
	}
	s.entering = false
}

// editName applies typed characters and a backspace to name.
func editName(name string, typed []rune, backspace bool) string {
	runes := []rune(name)
	if backspace && len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	for _, r := range typed {
		if len(runes) >= maxNameLength {
			break
		}
		if unicode.IsPrint(r) {
			runes = append(runes, r)
		}
	}
	return string(runes)
}

func (s *GameOverState) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
	vector.DrawFilledRect(screen, 100, 100, 400, 280, color.RGBA{0, 0, 0, 220}, false)

	title := "Game over!"
	if s.game.session.Outcome == event.Won {
		title = "You won!"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  Score: %d", title, s.game.session.Score), 120, 115)

	if s.entering {
		ebitenutil.DebugPrintAt(screen, "New high score! Your name: "+s.name+"_", 120, 140)
		return
	}
	for i, e := range s.game.session.Scores.Entries() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%2d. %-12s %6d", i+1, e.Name, e.Score), 120, 140+i*18)
	}
	ebitenutil.DebugPrintAt(screen, "N: new game", 120, 350)
}

func (s *GameOverState) Exit() {}
