package player

import "time"

// Timer is a pending one-shot callback
type Timer interface {
	Stop() bool
}

// Clock schedules one-shot callbacks. Tests swap in a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// timerHandle is the controller's single outstanding auto-advance timer.
// A callback only acts if its handle is still the one the controller owns.
type timerHandle struct {
	t Timer
}

func (h *timerHandle) stop() {
	if h.t != nil {
		h.t.Stop()
	}
}
