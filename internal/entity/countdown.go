package entity

// Countdown is a cooldown timer counted in steps. Progress always stays in [0, Period].
type Countdown struct {
	period    int
	remaining int
}

// NewCountdown creates a finished countdown.
func NewCountdown(period int) Countdown {
	if period < 0 {
		period = 0
	}
	return Countdown{period: period}
}

// Step advances the timer by one step.
func (c *Countdown) Step() {
	if c.remaining > 0 {
		c.remaining--
	}
}

// Done reports whether the cooldown has elapsed.
func (c *Countdown) Done() bool {
	return c.remaining == 0
}

// Start restarts the cooldown.
func (c *Countdown) Start() {
	c.remaining = c.period
}

// Period is the cooldown length in steps.
func (c *Countdown) Period() int {
	return c.period
}

// Remaining is the number of steps until the cooldown is done.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Progress is the elapsed part of the cooldown, in [0, Period].
func (c *Countdown) Progress() int {
	return c.period - c.remaining
}

// SetPeriod changes the length, keeping the remaining time within bounds.
func (c *Countdown) SetPeriod(period int) {
	if period < 0 {
		period = 0
	}
	c.period = period
	if c.remaining > period {
		c.remaining = period
	}
}
