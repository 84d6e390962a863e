package player

import "go.uber.org/atomic"

// Stats counts navigation activity since the controller was created
type Stats struct {
	Advances   int64
	Retreats   int64
	TimerFires int64
	Clicks     int64
}

type counters struct {
	advances   atomic.Int64
	retreats   atomic.Int64
	timerFires atomic.Int64
	clicks     atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Advances:   c.advances.Load(),
		Retreats:   c.retreats.Load(),
		TimerFires: c.timerFires.Load(),
		Clicks:     c.clicks.Load(),
	}
}
