package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/habeshabingo/rounds-backend/config"
	"github.com/habeshabingo/rounds-backend/models"
	"github.com/habeshabingo/rounds-backend/store"
	"github.com/habeshabingo/rounds-backend/utils/logger"
)

// Engine runs the round lifecycle for every stake: number calling, win
// claim reconciliation, prize finalization, and the per-stake countdown
// timers. One mutex guards the round and timer maps and all state inside
// them; store I/O and broadcasts happen outside the lock.
type Engine struct {
	payoutFraction float64
	drawInterval   time.Duration
	graceWindow    time.Duration
	countdownSec   int
	rearmDelaySec  int

	mu     sync.Mutex
	rounds map[int]*Round
	timers map[int]*StakeTimer

	sessions store.SessionStore
	accounts store.AccountStore
	history  store.HistoryStore
	bc       Broadcaster

	stop     chan struct{}
	stopOnce sync.Once
}

func NewEngine(cfg *config.Config, sessions store.SessionStore, accounts store.AccountStore, history store.HistoryStore, bc Broadcaster) *Engine {
	e := &Engine{
		payoutFraction: cfg.PayoutFraction,
		drawInterval:   cfg.DrawInterval,
		graceWindow:    cfg.GraceWindow,
		countdownSec:   cfg.CountdownSec,
		rearmDelaySec:  cfg.RearmDelaySec,
		rounds:         make(map[int]*Round),
		timers:         make(map[int]*StakeTimer),
		sessions:       sessions,
		accounts:       accounts,
		history:        history,
		bc:             bc,
		stop:           make(chan struct{}),
	}
	for _, stake := range cfg.Stakes {
		e.timers[stake] = &StakeTimer{Phase: PhaseWaiting, SecondsLeft: cfg.RearmDelaySec}
	}
	return e
}

// Stop shuts down the timer loop. Live rounds keep their own handles and
// are not interrupted.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// StartRound begins a round for a stake. Idempotent: a live round for the
// same stake makes this a no-op.
func (e *Engine) StartRound(stake int) error {
	e.mu.Lock()
	if r, ok := e.rounds[stake]; ok && !r.Ended {
		e.mu.Unlock()
		logger.Debugf("[stake %d] start ignored, round already live", stake)
		return nil
	}
	e.mu.Unlock()

	players, err := e.sessions.ListByStake(stake, models.SessionCardSelected, models.SessionPlaying)
	if err != nil {
		return fmt.Errorf("start round for stake %d: %w", stake, err)
	}

	e.mu.Lock()
	if r, ok := e.rounds[stake]; ok {
		if !r.Ended {
			e.mu.Unlock()
			return nil
		}
		r.cancelHandles()
		delete(e.rounds, stake)
	}
	round := &Round{
		Stake:        stake,
		Remaining:    NewDrawOrder(),
		Drawing:      true,
		Winners:      []WinClaim{},
		PrizePool:    float64(len(players)) * float64(stake) * e.payoutFraction,
		Participants: len(players),
		StartedAt:    time.Now(),
		drawCancel:   make(chan struct{}),
	}
	e.rounds[stake] = round
	if t, ok := e.timers[stake]; ok {
		t.Phase = PhaseInProgress
	}
	cancel := round.drawCancel
	pool := round.PrizePool
	e.mu.Unlock()

	if err := e.sessions.SetStatusByStake(stake, models.SessionCardSelected, models.SessionPlaying); err != nil {
		logger.Errorf("[stake %d] failed to mark sessions playing: %v", stake, err)
	}

	logger.Infof("[stake %d] round started: %d players, pool %.2f", stake, len(players), pool)
	e.bc.Broadcast(RoundStartedEvent{
		Type:         EventRoundStarted,
		Stake:        stake,
		PrizePool:    pool,
		Participants: len(players),
	})

	go e.runCaller(stake, cancel)
	return nil
}

// runCaller drives the periodic draw until cancelled or the round ends.
// Free-running fixed interval: the cadence can stretch under load but
// never shortens.
func (e *Engine) runCaller(stake int, cancel chan struct{}) {
	for {
		select {
		case <-cancel:
			return
		case <-time.After(e.drawInterval):
			if !e.drawNext(stake) {
				return
			}
		}
	}
}

// drawNext pops and broadcasts one number. Returns false when the caller
// should stop. Re-fetches the round from the registry: the one it was
// started for may have been replaced or removed.
func (e *Engine) drawNext(stake int) bool {
	e.mu.Lock()
	r, ok := e.rounds[stake]
	if !ok || r.Ended || !r.Drawing || len(r.Remaining) == 0 {
		e.mu.Unlock()
		return false
	}
	label := r.Remaining[0]
	r.Remaining = r.Remaining[1:]
	r.Called = append(r.Called, label)
	called := append([]string(nil), r.Called...)
	exhausted := len(r.Remaining) == 0 && len(r.Winners) == 0
	e.mu.Unlock()

	e.bc.Broadcast(NumberCalledEvent{
		Type:   EventNumberCalled,
		Stake:  stake,
		Label:  label,
		Called: called,
	})

	if exhausted {
		logger.Infof("[stake %d] pool exhausted with no winner", stake)
		e.finalizeRound(stake, r)
		return false
	}
	return true
}

// endRoundLocked marks the round ended, cancels its handles, and re-arms
// the stake timer. The round stays in the registry so late claims get
// ErrGameAlreadyEnded until the caller removes it. Engine lock held.
func (e *Engine) endRoundLocked(stake int, r *Round) {
	r.Ended = true
	r.GraceActive = false
	r.cancelHandles()
	if t, ok := e.timers[stake]; ok {
		t.Phase = PhaseWaiting
		t.SecondsLeft = e.rearmDelaySec
	}
}

// StopRound halts drawing and ends the round without prize distribution.
func (e *Engine) StopRound(stake int) error {
	e.mu.Lock()
	r, ok := e.rounds[stake]
	if !ok || r.Ended {
		e.mu.Unlock()
		return ErrNoActiveRound
	}
	e.endRoundLocked(stake, r)
	delete(e.rounds, stake)
	e.mu.Unlock()

	logger.Infof("[stake %d] round stopped by command", stake)
	e.bc.Broadcast(RoundStoppedEvent{Type: EventRoundStopped, Stake: stake})
	return nil
}

// ResetRound force-stops any round for the stake and purges its sessions.
// No broadcast; the recovery path for a stuck stake.
func (e *Engine) ResetRound(stake int) error {
	e.mu.Lock()
	if r, ok := e.rounds[stake]; ok {
		e.endRoundLocked(stake, r)
		delete(e.rounds, stake)
	}
	e.mu.Unlock()

	if err := e.sessions.DeleteByStake(stake); err != nil {
		return fmt.Errorf("reset stake %d: %w", stake, err)
	}
	logger.Infof("[stake %d] round reset", stake)
	return nil
}

// RoundState returns the called numbers so far for a live round.
func (e *Engine) RoundState(stake int) (*RoundSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.rounds[stake]
	if !ok {
		return nil, ErrNoActiveRound
	}
	snap := &RoundSnapshot{
		Type:        EventRoundState,
		Stake:       stake,
		Called:      append([]string(nil), r.Called...),
		Drawing:     r.Drawing,
		GraceActive: r.GraceActive,
	}
	if len(r.Called) > 0 {
		snap.LastCalled = r.Called[len(r.Called)-1]
	}
	return snap, nil
}
