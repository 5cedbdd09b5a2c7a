// internal/event/types.go
package event

const (
	EnemyDeath   EventType = "enemy_death"   // Data: []*entity.Enemy killed this step
	EnemyEscape  EventType = "enemy_escape"  // Data: []*entity.Enemy that left the field this step
	Cleared      EventType = "cleared"       // Data: nil, the queued waves have drained
	TowerPlaced  EventType = "tower_placed"  // Data: *entity.Tower
	TowerRemoved EventType = "tower_removed" // Data: *entity.Tower
	WaveStarted  EventType = "wave_started"  // Data: WaveInfo
	GameOver     EventType = "game_over"     // Data: Outcome
)

// WaveInfo accompanies WaveStarted.
type WaveInfo struct {
	Wave    int
	MaxWave int
	Enemies int
}

// Outcome is how a game ended.
type Outcome string

const (
	Won  Outcome = "won"
	Lost Outcome = "lost"
)
