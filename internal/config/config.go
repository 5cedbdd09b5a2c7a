// internal/config/config.go
package config

import (
	"image/color"
	"os"
	"strconv"
)

const (
	ScreenWidth  = 600
	ScreenHeight = 480
	MaxDeltaTime = 0.06

	GridCols = 6
	GridRows = 6
	CellSize = 60.0

	// Playfield offset inside the window
	FieldOffsetX = 20
	FieldOffsetY = 60

	StartCoins = 200
	StartLives = 100
	SellRatio  = 0.8

	// Steps per second delivered by the shell
	TicksPerSecond = 30
	ClickCooldown  = 150 // ms

	HighScoreEntries = 10

	DefaultLevel       = "MyLevel"
	DefaultMetricsAddr = "localhost:6060"
	DefaultScoresPath  = "highscores.json"
)

var (
	// Units enter on the left edge and leave on the right.
	SpawnCell = [2]int{-1, 1}
	GoalCell  = [2]int{GridCols, 4}
	ExitDelta = [2]int{1, 0}
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	PassableColor   = color.RGBA{70, 100, 120, 220}
	ImpassableColor = color.RGBA{150, 70, 70, 220}
	EntryColor      = color.RGBA{0, 255, 0, 255}
	ExitColor       = color.RGBA{255, 0, 0, 255}
	PathColor       = color.RGBA{255, 255, 0, 128}
	IllegalColor    = color.RGBA{255, 40, 40, 160}
	ProjectileColor = color.RGBA{240, 240, 240, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	StrokeWidth     = 2.0
)

// Settings are the values a player can override without rebuilding.
type Settings struct {
	Level       string
	ScoresPath  string
	MetricsAddr string
	TicksPerSec int
	Obstacles   int
	Seed        int64 // zero picks one from the clock
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Level:       DefaultLevel,
		ScoresPath:  DefaultScoresPath,
		MetricsAddr: DefaultMetricsAddr,
		TicksPerSec: TicksPerSecond,
	}
}

// FromEnv returns Default with TOWERS_* environment overrides applied.
func FromEnv() Settings {
	cfg := Default()
	if v := os.Getenv("TOWERS_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("TOWERS_SCORES"); v != "" {
		cfg.ScoresPath = v
	}
	if v, ok := os.LookupEnv("TOWERS_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if tps := getEnvInt("TOWERS_TPS", 0); tps > 0 {
		cfg.TicksPerSec = tps
	}
	if n := getEnvInt("TOWERS_OBSTACLES", -1); n >= 0 {
		cfg.Obstacles = n
	}
	cfg.Seed = int64(getEnvInt("TOWERS_SEED", 0))
	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
