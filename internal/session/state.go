// internal/session/state.go
package session

import (
	"go-towers/internal/config"
	"go-towers/internal/event"
)

// State is everything a status bar shows about the running game.
type State struct {
	ID      string
	LevelID string
	Wave    int
	MaxWave int
	Score   int
	Coins   int
	Lives   int
	Paused  bool
	Outcome event.Outcome // empty while playing
}

// Reset restores the values a new game starts with.
func (s *State) Reset() {
	s.Wave = 0
	s.Score = 0
	s.Coins = config.StartCoins
	s.Lives = config.StartLives
	s.Paused = false
	s.Outcome = ""
}

// Over reports whether the game has been won or lost.
func (s *State) Over() bool {
	return s.Outcome != ""
}
