package session

import (
	"os"
	"testing"
	"time"

	"go-towers/internal/app"
	"go-towers/internal/defs"
	"go-towers/internal/entity"
	"go-towers/internal/event"
	"go-towers/internal/level"
	"go-towers/internal/utils"
	"go-towers/pkg/gridmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	defs.MustLoad()
	os.Exit(m.Run())
}

func newSession(t *testing.T, id string) *Session {
	t.Helper()
	lvl, err := level.Load(id)
	require.NoError(t, err)
	return New(app.NewGame(app.DefaultLayout(), nil), lvl, nil)
}

func enemies(kind string, n int) []*entity.Enemy {
	out := make([]*entity.Enemy, n)
	for i := range out {
		out[i] = entity.NewEnemy(defs.EnemyLibrary[kind])
	}
	return out
}

func dispatch(s *Session, t event.EventType, data interface{}) {
	s.Game.EventDispatcher.Dispatch(event.Event{Type: t, Data: data})
}

func TestNew_StartsPausedOnWaveOne(t *testing.T) {
	s := newSession(t, "MyLevel")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "MyLevel", s.LevelID)
	assert.Equal(t, 1, s.Wave)
	assert.Equal(t, 20, s.MaxWave)
	assert.Equal(t, 200, s.Coins)
	assert.Equal(t, 100, s.Lives)
	assert.Zero(t, s.Score)
	assert.True(t, s.Paused)
	assert.True(t, s.Game.WaveActive())
	assert.Equal(t, 1, s.Game.WaveSystem.Pending())
}

func TestTick_PausedChangesNothing(t *testing.T) {
	s := newSession(t, "MyLevel")
	before := s.State

	for i := 0; i < 100; i++ {
		assert.False(t, s.Tick())
	}
	assert.Equal(t, before, s.State)
	assert.Zero(t, s.Game.CurrentStep())
	assert.Empty(t, s.Game.Enemies())
}

func TestTick_Runs(t *testing.T) {
	s := newSession(t, "MyLevel")
	var observed []int
	s.StepObserver = func(_ time.Duration, alive int) { observed = append(observed, alive) }

	s.TogglePaused()
	for i := 0; i < 11; i++ {
		require.True(t, s.Tick())
	}
	assert.Equal(t, 11, s.Game.CurrentStep())
	require.Len(t, observed, 11)
	assert.Equal(t, 1, observed[10], "the advanced enemy arrives at step 10")
}

func TestTick_PauseResumeKeepsStepSequence(t *testing.T) {
	straight := newSession(t, "MyLevel")
	straight.SetPaused(false)
	for i := 0; i < 30; i++ {
		require.True(t, straight.Tick())
	}

	s := newSession(t, "MyLevel")
	var steps []int
	s.StepObserver = func(time.Duration, int) { steps = append(steps, s.Game.CurrentStep()) }
	s.SetPaused(false)
	for i := 0; i < 12; i++ {
		require.True(t, s.Tick())
	}

	s.SetPaused(true)
	s.SetPaused(true)
	frozen := s.State
	var positions []gridmap.Point
	for _, e := range s.Game.Enemies() {
		positions = append(positions, e.Position)
	}
	for i := 0; i < 50; i++ {
		assert.False(t, s.Tick())
	}
	assert.Equal(t, frozen, s.State)
	assert.Equal(t, 12, s.Game.CurrentStep())
	for i, e := range s.Game.Enemies() {
		assert.Equal(t, positions[i], e.Position)
	}

	s.SetPaused(false)
	s.SetPaused(false)
	for i := 0; i < 18; i++ {
		require.True(t, s.Tick())
	}

	want := make([]int, 30)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, steps, "no step skipped or repeated")
	assert.Equal(t, straight.State.Score, s.State.Score)
	assert.Equal(t, straight.State.Lives, s.State.Lives)
	assert.Equal(t, straight.State.Coins, s.State.Coins)
	require.Len(t, s.Game.Enemies(), len(straight.Game.Enemies()))
	for i, e := range s.Game.Enemies() {
		other := straight.Game.Enemies()[i]
		assert.Equal(t, other.Position, e.Position)
		assert.Equal(t, other.Health, e.Health)
	}
}

func TestBuy(t *testing.T) {
	s := newSession(t, "MyLevel")

	require.NoError(t, s.Buy(gridmap.Cell{X: 2, Y: 2}, "simple"))
	assert.Equal(t, 180, s.Coins)

	err := s.Buy(gridmap.Cell{X: 2, Y: 2}, "simple")
	assert.ErrorIs(t, err, ErrIllegalPlacement)
	assert.Equal(t, 180, s.Coins)

	assert.ErrorIs(t, s.Buy(gridmap.Cell{X: 0, Y: 0}, "laser"), ErrUnknownTower)

	require.NoError(t, s.Buy(gridmap.Cell{X: 0, Y: 0}, "missile"))
	require.NoError(t, s.Buy(gridmap.Cell{X: 5, Y: 0}, "missile"))
	assert.Equal(t, 20, s.Coins)
	assert.False(t, s.CanAfford("slow"))
	assert.ErrorIs(t, s.Buy(gridmap.Cell{X: 4, Y: 0}, "slow"), ErrInsufficientFunds)
	assert.Len(t, s.Game.Towers(), 3)
}

func TestSell(t *testing.T) {
	s := newSession(t, "MyLevel")
	cell := gridmap.Cell{X: 1, Y: 3}
	require.NoError(t, s.Buy(cell, "simple"))

	refund, err := s.Sell(cell)
	require.NoError(t, err)
	assert.Equal(t, 16, refund)
	assert.Equal(t, 196, s.Coins)

	_, err = s.Sell(cell)
	assert.ErrorIs(t, err, ErrNoTower)
}

func TestUpgrade(t *testing.T) {
	s := newSession(t, "MyLevel")
	simple := gridmap.Cell{X: 1, Y: 0}
	missile := gridmap.Cell{X: 3, Y: 0}
	require.NoError(t, s.Buy(simple, "simple"))
	require.NoError(t, s.Buy(missile, "missile"))
	require.Equal(t, 100, s.Coins)

	require.NoError(t, s.Upgrade(simple))
	tower, _ := s.Game.Tower(simple)
	assert.Equal(t, 6, tower.Damage())
	assert.Equal(t, 90, s.Coins)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Upgrade(missile), "upgrade %d", i)
	}
	tower, _ = s.Game.Tower(missile)
	assert.Equal(t, 2, tower.Cooldown.Period())
	assert.ErrorIs(t, s.Upgrade(missile), ErrNotUpgradable)
	assert.Equal(t, 50, s.Coins)

	assert.ErrorIs(t, s.Upgrade(gridmap.Cell{X: 5, Y: 5}), ErrNoTower)

	s.Coins = 5
	assert.ErrorIs(t, s.Upgrade(simple), ErrInsufficientFunds)
}

func TestRewards(t *testing.T) {
	s := newSession(t, "MyLevel")

	dispatch(s, event.EnemyDeath, enemies("simple", 4))
	assert.Equal(t, 220, s.Coins)
	assert.Equal(t, 40, s.Score, "4 kills: 4 * int(5 * 2)")

	dispatch(s, event.EnemyDeath, enemies("energy", 1))
	assert.Equal(t, 230, s.Coins)
	assert.Equal(t, 50, s.Score)
}

func TestEscape_LosesGame(t *testing.T) {
	s := newSession(t, "MyLevel")
	var over []event.Outcome
	s.Game.On(event.GameOver, func(e event.Event) { over = append(over, e.Data.(event.Outcome)) })

	dispatch(s, event.EnemyEscape, enemies("simple", 3))
	assert.Equal(t, 97, s.Lives)
	assert.False(t, s.Over())

	s.Lives = 2
	dispatch(s, event.EnemyEscape, enemies("simple", 3))
	assert.Zero(t, s.Lives)
	assert.Equal(t, event.Lost, s.Outcome)
	assert.Equal(t, []event.Outcome{event.Lost}, over)

	s.SetPaused(false)
	assert.False(t, s.Tick())
	assert.ErrorIs(t, s.Buy(gridmap.Cell{X: 0, Y: 0}, "simple"), ErrGameOver)
	assert.False(t, s.NextWave())

	dispatch(s, event.Cleared, nil)
	assert.Len(t, over, 1, "game over is announced once")
}

func TestCleared_WinsOnLastWave(t *testing.T) {
	s := newSession(t, "MyLevel")

	dispatch(s, event.Cleared, nil)
	assert.False(t, s.Over())

	for s.NextWave() {
	}
	assert.Equal(t, 20, s.Wave)
	dispatch(s, event.Cleared, nil)
	assert.Equal(t, event.Won, s.Outcome)
}

func TestChangeLevel(t *testing.T) {
	s := newSession(t, "MyLevel")
	require.NoError(t, s.Buy(gridmap.Cell{X: 0, Y: 0}, "simple"))
	id := s.ID

	require.NoError(t, s.ChangeLevel("AdvancedLevel"))
	assert.Equal(t, "AdvancedLevel", s.LevelID)
	assert.NotEqual(t, id, s.ID)
	assert.Equal(t, 200, s.Coins)
	assert.Empty(t, s.Game.Towers())

	price, err := s.Price("simple")
	require.NoError(t, err)
	assert.Equal(t, 50, price)

	err = s.ChangeLevel("Nightmare")
	assert.ErrorIs(t, err, level.ErrUnknownLevel)
	assert.Equal(t, "AdvancedLevel", s.LevelID)
}

func TestNextWave_AgesTowers(t *testing.T) {
	s := newSession(t, "AdvancedLevel")
	cell := gridmap.Cell{X: 2, Y: 0}
	require.NoError(t, s.Buy(cell, "simple"))
	tower, _ := s.Game.Tower(cell)
	require.Equal(t, 1, tower.BornWave)

	for s.Wave < 10 {
		require.True(t, s.NextWave())
	}
	assert.False(t, tower.Aged)

	require.True(t, s.NextWave())
	assert.True(t, tower.Aged)
	assert.ErrorIs(t, s.Upgrade(cell), ErrNotUpgradable)

	refund, err := s.Sell(cell)
	require.NoError(t, err)
	assert.Zero(t, refund, "aged towers are worth nothing")
}

func TestHighScore(t *testing.T) {
	s := newSession(t, "MyLevel")
	s.Score = 120
	assert.False(t, s.QualifiesForHighScore())
	_, err := s.RecordHighScore("ann")
	assert.Error(t, err)

	s.Lives = 1
	dispatch(s, event.EnemyEscape, enemies("simple", 1))
	require.True(t, s.QualifiesForHighScore())
	rank, err := s.RecordHighScore("ann")
	require.NoError(t, err)
	assert.Zero(t, rank)
	assert.Equal(t, 120, s.Scores.Entries()[0].Score)
}

func TestClose(t *testing.T) {
	s := newSession(t, "MyLevel")
	s.Close()
	assert.True(t, s.Game.Stopped())
	assert.Zero(t, s.Game.EventDispatcher.Count(event.EnemyDeath))
}

func TestWithObstacles_EveryNewGame(t *testing.T) {
	lvl, err := level.Load("MyLevel")
	require.NoError(t, err)
	s := New(app.NewGame(app.DefaultLayout(), nil), lvl, nil, WithObstacles(utils.NewPRNGService(7), 4))
	assert.Len(t, s.Game.Obstacles(), 4)

	s.NewGame()
	assert.Len(t, s.Game.Obstacles(), 4)
	assert.True(t, s.Game.Field().Connected(s.Game.PathFinder.Spawns()...))
}
