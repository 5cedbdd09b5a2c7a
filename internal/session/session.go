// internal/session/session.go
package session

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"go-towers/internal/app"
	"go-towers/internal/config"
	"go-towers/internal/defs"
	"go-towers/internal/entity"
	"go-towers/internal/event"
	"go-towers/internal/highscore"
	"go-towers/internal/level"
	"go-towers/internal/utils"
	"go-towers/pkg/gridmap"

	"github.com/google/uuid"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrIllegalPlacement  = errors.New("illegal placement")
	ErrUnknownTower      = errors.New("unknown tower type")
	ErrNoTower           = errors.New("no tower on cell")
	ErrNotUpgradable     = errors.New("tower cannot be upgraded")
	ErrGameOver          = errors.New("game is over")
)

// Session applies the player-facing rules on top of the engine:
// money, score, lives, waves, the shop and the end of the game.
type Session struct {
	State

	Game   *app.Game
	Level  *level.Level
	Scores *highscore.Table

	// StepObserver, if set, is told how long each step took and how many enemies remain.
	StepObserver func(d time.Duration, alive int)

	rng       *utils.PRNGService
	obstacles int
	cancels   []func()
}

// Option configures a Session.
type Option func(*Session)

// WithObstacles scatters n obstacles on every new game, drawn from rng.
func WithObstacles(rng *utils.PRNGService, n int) Option {
	return func(s *Session) {
		s.rng = rng
		s.obstacles = n
	}
}

// New wires a session to the engine's events and starts a new game.
func New(game *app.Game, lvl *level.Level, scores *highscore.Table, opts ...Option) *Session {
	if scores == nil {
		scores = highscore.NewTable(config.HighScoreEntries)
	}
	s := &Session{Game: game, Level: lvl, Scores: scores}
	for _, opt := range opts {
		opt(s)
	}
	s.cancels = append(s.cancels,
		game.On(event.EnemyDeath, s.handleDeath),
		game.On(event.EnemyEscape, s.handleEscape),
		game.On(event.Cleared, s.handleCleared),
	)
	s.NewGame()
	return s
}

// NewGame resets the field and the state, queues the first wave and pauses.
func (s *Session) NewGame() {
	s.Game.Reset()
	s.Game.SetTowerLevel(s.Level.TowerLevel())
	if s.rng != nil && s.obstacles > 0 {
		s.Game.ScatterObstacles(s.rng, s.obstacles)
	}

	s.State.Reset()
	s.ID = uuid.NewString()
	s.LevelID = s.Level.ID()
	s.MaxWave = s.Level.MaxWave()
	log.Printf("New game %s on %s", s.ID, s.LevelID)

	s.NextWave()
	s.Paused = true
}

// ChangeLevel switches difficulty and starts over.
func (s *Session) ChangeLevel(id string) error {
	lvl, err := level.Load(id)
	if err != nil {
		return err
	}
	s.Level = lvl
	s.NewGame()
	return nil
}

// Close detaches the session from the engine and stops the engine for good.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.Game.Stop()
}

// Tick runs one engine step. It does nothing while paused or after the game ended.
func (s *Session) Tick() bool {
	if s.Paused || s.Over() {
		return false
	}
	start := time.Now()
	s.Game.Step()
	if s.StepObserver != nil {
		s.StepObserver(time.Since(start), len(s.Game.Enemies()))
	}
	return true
}

// SetPaused pauses or resumes ticking.
func (s *Session) SetPaused(paused bool) {
	if s.Over() {
		return
	}
	s.Paused = paused
}

// TogglePaused flips the pause state.
func (s *Session) TogglePaused() {
	s.SetPaused(!s.Paused)
}

// NextWave ages old towers and queues the next wave.
// It reports false once the last wave has been sent or the game is over.
func (s *Session) NextWave() bool {
	if s.Over() || s.Wave >= s.Level.MaxWave() {
		return false
	}
	s.Wave++
	s.Game.SetWave(s.Wave)
	s.Game.AgeTowers(s.Wave, s.Level.AgeAfter())

	entries := s.Level.Wave(s.Wave)
	s.Game.QueueWave(entries)
	log.Printf("Wave %d/%d: %d enemies", s.Wave, s.MaxWave, len(entries))

	s.Game.EventDispatcher.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveInfo{Wave: s.Wave, MaxWave: s.MaxWave, Enemies: len(entries)},
	})
	return true
}

// Price is what a new tower of kind costs at the current level.
func (s *Session) Price(kind string) (int, error) {
	def, ok := defs.TowerLibrary[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTower, kind)
	}
	return entity.NewTower(def, s.Level.TowerLevel()).Value(), nil
}

// CanAfford reports whether the player has the coins for a tower of kind.
func (s *Session) CanAfford(kind string) bool {
	price, err := s.Price(kind)
	return err == nil && price <= s.Coins
}

// Buy places a tower of kind on cell and charges for it.
func (s *Session) Buy(cell gridmap.Cell, kind string) error {
	if s.Over() {
		return ErrGameOver
	}
	price, err := s.Price(kind)
	if err != nil {
		return err
	}
	if price > s.Coins {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, kind, price, s.Coins)
	}
	if !s.Game.Place(cell, kind) {
		return fmt.Errorf("%w: %v", ErrIllegalPlacement, cell)
	}
	s.Coins -= price
	return nil
}

// Sell removes the tower on cell and refunds part of its value.
func (s *Session) Sell(cell gridmap.Cell) (int, error) {
	if s.Over() {
		return 0, ErrGameOver
	}
	tower, ok := s.Game.Remove(cell)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoTower, cell)
	}
	refund := int(float64(tower.Value()) * config.SellRatio)
	s.Coins += refund
	return refund, nil
}

// Upgrade buys the tower's upgrade: more damage or a shorter cooldown, depending on its kind.
func (s *Session) Upgrade(cell gridmap.Cell) error {
	if s.Over() {
		return ErrGameOver
	}
	tower, ok := s.Game.Tower(cell)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoTower, cell)
	}
	if !tower.CanUpgrade() {
		return fmt.Errorf("%w: %s at %v", ErrNotUpgradable, tower.Def.ID, cell)
	}
	cost := tower.Def.Upgrade.Cost
	if cost > s.Coins {
		return fmt.Errorf("%w: upgrade costs %d, have %d", ErrInsufficientFunds, cost, s.Coins)
	}
	if !tower.Upgrade() {
		return fmt.Errorf("%w: %s at %v", ErrNotUpgradable, tower.Def.ID, cell)
	}
	s.Coins -= cost
	return nil
}

// QualifiesForHighScore reports whether a finished game's score makes the table.
func (s *Session) QualifiesForHighScore() bool {
	return s.Over() && s.Scores.Qualifies(s.Score)
}

// RecordHighScore enters the final score under name and returns its rank.
func (s *Session) RecordHighScore(name string) (int, error) {
	if !s.Over() {
		return -1, errors.New("game is still running")
	}
	return s.Scores.Add(name, s.Score), nil
}

func (s *Session) handleDeath(e event.Event) {
	enemies, _ := e.Data.([]*entity.Enemy)
	bonus := math.Sqrt(float64(len(enemies)))
	for _, enemy := range enemies {
		s.Coins += enemy.Points()
		s.Score += int(float64(enemy.Points()) * bonus)
	}
}

func (s *Session) handleEscape(e event.Event) {
	enemies, _ := e.Data.([]*entity.Enemy)
	s.Lives = max(s.Lives-len(enemies), 0)
	if s.Lives == 0 {
		s.gameOver(event.Lost)
	}
}

func (s *Session) handleCleared(event.Event) {
	if s.Wave == s.Level.MaxWave() {
		s.gameOver(event.Won)
	}
}

func (s *Session) gameOver(outcome event.Outcome) {
	if s.Over() {
		return
	}
	s.Outcome = outcome
	log.Printf("Game %s %s at wave %d with score %d", s.ID, outcome, s.Wave, s.Score)
	s.Game.EventDispatcher.Dispatch(event.Event{Type: event.GameOver, Data: outcome})
}
