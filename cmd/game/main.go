// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"time"

	"go-towers/internal/app"
	"go-towers/internal/config"
	"go-towers/internal/defs"
	"go-towers/internal/highscore"
	"go-towers/internal/level"
	"go-towers/internal/metrics"
	"go-towers/internal/session"
	"go-towers/internal/state"
	"go-towers/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using defaults and environment")
	}
	cfg := config.FromEnv()
	flag.StringVar(&cfg.Level, "level", cfg.Level, "level to start on")
	flag.StringVar(&cfg.ScoresPath, "scores", cfg.ScoresPath, "high-score file")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "loopback address for /metrics and pprof, empty to disable")
	flag.IntVar(&cfg.TicksPerSec, "tps", cfg.TicksPerSec, "simulation steps per second")
	flag.IntVar(&cfg.Obstacles, "obstacles", cfg.Obstacles, "obstacles scattered on each new game")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "obstacle layout seed, 0 for random")
	flag.Parse()

	defs.MustLoad()
	lvl, err := level.Load(cfg.Level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	store := highscore.NewFileStore(cfg.ScoresPath)
	scores, err := store.Load(config.HighScoreEntries)
	if err != nil {
		log.Printf("Starting with an empty high-score table: %v", err)
		scores = highscore.NewTable(config.HighScoreEntries)
	}

	collector := metrics.NewCollector()
	metrics.StartDebugServer(cfg.MetricsAddr, collector)

	game := app.NewGame(app.DefaultLayout(), nil)
	collector.Attach(game.EventDispatcher)

	var opts []session.Option
	if cfg.Obstacles > 0 {
		opts = append(opts, session.WithObstacles(utils.NewPRNGService(cfg.Seed), cfg.Obstacles))
	}
	sess := session.New(game, lvl, scores, opts...)
	sess.StepObserver = collector.RecordStep
	defer sess.Close()

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, sess, store, cfg.TicksPerSec))

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Towers")
	if err := ebiten.RunGame(&AppGame{stateMachine: sm, lastUpdateTime: time.Now()}); err != nil {
		log.Fatal(err)
	}
}
