// internal/metrics/metrics.go
package metrics

import (
	"time"

	"go-towers/internal/event"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector turns engine events and step timings into Prometheus metrics.
// Labels stay bounded: tower kinds and outcomes come from the data tables.
type Collector struct {
	Registry *prometheus.Registry

	stepDuration   prometheus.Histogram
	enemiesAlive   prometheus.Gauge
	enemiesKilled  prometheus.Counter
	enemiesEscaped prometheus.Counter
	towersPlaced   *prometheus.CounterVec
	towersRemoved  *prometheus.CounterVec
	wave           prometheus.Gauge
	gamesOver      *prometheus.CounterVec
}

// NewCollector registers every metric on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		Registry: reg,
		stepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "towers_step_duration_seconds",
			Help:    "Time spent in one simulation step",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.033},
		}),
		enemiesAlive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "towers_enemies_alive",
			Help: "Enemies on the field after the last step",
		}),
		enemiesKilled: factory.NewCounter(prometheus.CounterOpts{
			Name: "towers_enemies_killed_total",
			Help: "Enemies killed",
		}),
		enemiesEscaped: factory.NewCounter(prometheus.CounterOpts{
			Name: "towers_enemies_escaped_total",
			Help: "Enemies that reached the goal",
		}),
		towersPlaced: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "towers_placed_total",
			Help: "Towers placed",
		}, []string{"kind"}),
		towersRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "towers_removed_total",
			Help: "Towers sold or removed",
		}, []string{"kind"}),
		wave: factory.NewGauge(prometheus.GaugeOpts{
			Name: "towers_wave",
			Help: "Current wave number",
		}),
		gamesOver: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "towers_games_over_total",
			Help: "Finished games",
		}, []string{"outcome"}),
	}
}

// Attach subscribes the collector to every event it understands.
func (c *Collector) Attach(d *event.Dispatcher) {
	for _, t := range []event.EventType{
		event.EnemyDeath, event.EnemyEscape, event.TowerPlaced,
		event.TowerRemoved, event.WaveStarted, event.GameOver,
	} {
		d.Subscribe(t, c)
	}
}

// OnEvent implements event.Listener.
func (c *Collector) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyDeath:
		c.enemiesKilled.Add(float64(count(e.Data)))
	case event.EnemyEscape:
		c.enemiesEscaped.Add(float64(count(e.Data)))
	case event.TowerPlaced:
		if kind, ok := towerKind(e.Data); ok {
			c.towersPlaced.WithLabelValues(kind).Inc()
		}
	case event.TowerRemoved:
		if kind, ok := towerKind(e.Data); ok {
			c.towersRemoved.WithLabelValues(kind).Inc()
		}
	case event.WaveStarted:
		if info, ok := e.Data.(event.WaveInfo); ok {
			c.wave.Set(float64(info.Wave))
		}
	case event.GameOver:
		if outcome, ok := e.Data.(event.Outcome); ok {
			c.gamesOver.WithLabelValues(string(outcome)).Inc()
		}
	}
}

// RecordStep records how long a step took and how many enemies are left.
func (c *Collector) RecordStep(d time.Duration, alive int) {
	c.stepDuration.Observe(d.Seconds())
	c.enemiesAlive.Set(float64(alive))
}
