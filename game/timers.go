package game

import (
	"time"

	"github.com/habeshabingo/rounds-backend/models"
	"github.com/habeshabingo/rounds-backend/utils/logger"
)

type TimerPhase string

const (
	PhaseWaiting    TimerPhase = "waiting"
	PhaseCountdown  TimerPhase = "countdown"
	PhaseInProgress TimerPhase = "in_progress"
)

// StakeTimer is the per-stake countdown state. It persists across rounds;
// in_progress is derived from the session store every tick, never cached.
type StakeTimer struct {
	Phase        TimerPhase
	SecondsLeft  int
	Participants int
	PrizePool    float64
}

type TimerSnapshot struct {
	Phase        TimerPhase `json:"phase"`
	SecondsLeft  int        `json:"secondsLeft"`
	Participants int        `json:"participants"`
	PrizePool    float64    `json:"prizePool"`
}

type stakeCounts struct {
	waiting int // card_selected
	playing int
}

// RunTimers drives all stake timers on a 1s tick until Stop.
func (e *Engine) RunTimers() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.tickTimers()
		}
	}
}

// tickTimers advances every stake timer by one second and broadcasts the
// full snapshot only when something actually changed.
func (e *Engine) tickTimers() {
	e.mu.Lock()
	stakes := make([]int, 0, len(e.timers))
	for stake := range e.timers {
		stakes = append(stakes, stake)
	}
	e.mu.Unlock()

	// Session counts come fresh from the store each tick; a stale cached
	// phase never survives a live-round status check.
	counts := make(map[int]stakeCounts, len(stakes))
	for _, stake := range stakes {
		sessions, err := e.sessions.ListByStake(stake)
		if err != nil {
			logger.Errorf("[stake %d] timer tick session fetch failed: %v", stake, err)
			continue
		}
		var c stakeCounts
		for _, s := range sessions {
			switch s.Status {
			case models.SessionCardSelected:
				c.waiting++
			case models.SessionPlaying:
				c.playing++
			}
		}
		counts[stake] = c
	}

	e.mu.Lock()
	changed := false
	for stake, t := range e.timers {
		c, ok := counts[stake]
		if !ok {
			continue // store error, keep last known state
		}
		prev := *t
		t.Participants = c.waiting
		t.PrizePool = float64(c.waiting) * float64(stake) * e.payoutFraction

		switch {
		case c.playing > 0:
			t.Phase = PhaseInProgress
		case t.Phase == PhaseInProgress:
			t.Phase = PhaseWaiting
			t.SecondsLeft = e.rearmDelaySec
		case t.Phase == PhaseWaiting:
			if t.SecondsLeft > 0 {
				t.SecondsLeft--
			}
			if t.SecondsLeft <= 0 && c.waiting > 0 {
				t.Phase = PhaseCountdown
				t.SecondsLeft = e.countdownSec
			}
		case t.Phase == PhaseCountdown:
			t.SecondsLeft--
			if t.SecondsLeft <= 0 {
				if c.waiting > 0 {
					// Players are still seated and waiting: the window
					// restarts. Round start stays command-driven.
					t.SecondsLeft = e.countdownSec
				} else {
					t.Phase = PhaseWaiting
					t.SecondsLeft = e.rearmDelaySec
				}
			}
		}
		if *t != prev {
			changed = true
		}
	}
	var snapshot map[int]TimerSnapshot
	if changed {
		snapshot = e.timerSnapshotLocked()
	}
	e.mu.Unlock()

	if changed {
		e.bc.Broadcast(TimerStatesEvent{Type: EventTimerStates, Timers: snapshot})
	}
}

// TimerStates returns the current snapshot for all stakes.
func (e *Engine) TimerStates() map[int]TimerSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timerSnapshotLocked()
}

func (e *Engine) timerSnapshotLocked() map[int]TimerSnapshot {
	out := make(map[int]TimerSnapshot, len(e.timers))
	for stake, t := range e.timers {
		out[stake] = TimerSnapshot{
			Phase:        t.Phase,
			SecondsLeft:  t.SecondsLeft,
			Participants: t.Participants,
			PrizePool:    t.PrizePool,
		}
	}
	return out
}
