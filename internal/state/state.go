// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State is one screen of the shell.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine switches between states.
type StateMachine struct {
	current State
}

// NewStateMachine creates a machine with no state.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState leaves the current state and enters the new one.
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Current returns the active state.
func (sm *StateMachine) Current() State {
	return sm.current
}

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

// ticker converts frame time into a whole number of simulation steps.
type ticker struct {
	period float64
	acc    float64
}

func newTicker(perSecond int) *ticker {
	if perSecond < 1 {
		perSecond = 1
	}
	return &ticker{period: 1 / float64(perSecond)}
}

// Due adds dt seconds and returns how many steps are now owed.
func (t *ticker) Due(dt float64) int {
	t.acc += dt
	n := 0
	for t.acc >= t.period {
		t.acc -= t.period
		n++
	}
	return n
}

func (t *ticker) Reset() {
	t.acc = 0
}
