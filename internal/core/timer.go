package core

import "time"

// StepClock converts wall-clock time into whole fixed-length ticks.
type StepClock struct {
	period   time.Duration
	backlog  time.Duration
	last     time.Time
	maxBurst int
}

// NewStepClock targets tps ticks per second. Non-positive rates select 60.
func NewStepClock(tps int) *StepClock {
	c := &StepClock{maxBurst: 4}
	c.SetTPS(tps)
	return c
}

// SetTPS changes the tick rate and drops any pending backlog.
func (c *StepClock) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	c.period = time.Second / time.Duration(tps)
	c.backlog = 0
}

// Period is the wall time covered by one tick.
func (c *StepClock) Period() time.Duration { return c.period }

// Seconds is the tick length in seconds, the dt handed to Advance.
func (c *StepClock) Seconds() float64 { return c.period.Seconds() }

// Due returns how many ticks have elapsed since the previous call. A slow
// caller is allowed to catch up by at most four ticks; older backlog is
// dropped.
func (c *StepClock) Due(now time.Time) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	if elapsed := now.Sub(c.last); elapsed > 0 {
		c.backlog += elapsed
	}
	c.last = now
	n := int(c.backlog / c.period)
	c.backlog -= time.Duration(n) * c.period
	if n > c.maxBurst {
		n = c.maxBurst
		c.backlog = 0
	}
	return n
}
