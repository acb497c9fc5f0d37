package game

import (
	"sync"
	"time"

	"github.com/habeshabingo/rounds-backend/config"
	"github.com/habeshabingo/rounds-backend/models"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions []models.GameSession
	purges   map[int]int
	listErr  error
}

func newFakeSessions(sessions ...models.GameSession) *fakeSessions {
	return &fakeSessions{sessions: sessions, purges: make(map[int]int)}
}

func (f *fakeSessions) ListByStake(stake int, statuses ...string) ([]models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.GameSession
	for _, s := range f.sessions {
		if s.Stake != stake {
			continue
		}
		if len(statuses) == 0 {
			out = append(out, s)
			continue
		}
		for _, st := range statuses {
			if s.Status == st {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSessions) SetStatusByStake(stake int, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sessions {
		if f.sessions[i].Stake == stake && f.sessions[i].Status == from {
			f.sessions[i].Status = to
		}
	}
	return nil
}

func (f *fakeSessions) DeleteByStake(stake int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purges[stake]++
	kept := f.sessions[:0]
	for _, s := range f.sessions {
		if s.Stake != stake {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	return nil
}

func (f *fakeSessions) purgeCount(stake int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.purges[stake]
}

type fakeAccounts struct {
	mu        sync.Mutex
	credits   map[uint][]float64
	earnings  map[uint]float64
	creditErr map[uint]error

	// When set, Credit signals creditEntered and then blocks on
	// creditGate, simulating slow store I/O mid-finalize.
	creditEntered chan struct{}
	creditGate    chan struct{}
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		credits:   make(map[uint][]float64),
		earnings:  make(map[uint]float64),
		creditErr: make(map[uint]error),
	}
}

func (f *fakeAccounts) Credit(userID uint, amount float64) error {
	f.mu.Lock()
	entered, gate := f.creditEntered, f.creditGate
	err := f.creditErr[userID]
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits[userID] = append(f.credits[userID], amount)
	return nil
}

func (f *fakeAccounts) Debit(userID uint, amount float64) error {
	return nil
}

func (f *fakeAccounts) RecordEarnings(userID uint, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.earnings[userID] += amount
	return nil
}

func (f *fakeAccounts) failCreditFor(userID uint, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creditErr[userID] = err
}

func (f *fakeAccounts) creditedOnce(userID uint) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.credits[userID]) != 1 {
		return 0, false
	}
	return f.credits[userID][0], true
}

func (f *fakeAccounts) totalCreditCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.credits {
		n += len(c)
	}
	return n
}

type fakeHistory struct {
	mu      sync.Mutex
	records []models.WinHistory
}

func (f *fakeHistory) Append(rec *models.WinHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeHistory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []interface{}
}

func (b *fakeBroadcaster) Broadcast(event interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBroadcaster) all() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]interface{}(nil), b.events...)
}

func (b *fakeBroadcaster) numberCalled() []NumberCalledEvent {
	var out []NumberCalledEvent
	for _, e := range b.all() {
		if ev, ok := e.(NumberCalledEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (b *fakeBroadcaster) roundStopped() []RoundStoppedEvent {
	var out []RoundStoppedEvent
	for _, e := range b.all() {
		if ev, ok := e.(RoundStoppedEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (b *fakeBroadcaster) winnerAnnounced() []WinnerAnnouncedEvent {
	var out []WinnerAnnouncedEvent
	for _, e := range b.all() {
		if ev, ok := e.(WinnerAnnouncedEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (b *fakeBroadcaster) roundEnded() []RoundEndedEvent {
	var out []RoundEndedEvent
	for _, e := range b.all() {
		if ev, ok := e.(RoundEndedEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (b *fakeBroadcaster) timerStates() []TimerStatesEvent {
	var out []TimerStatesEvent
	for _, e := range b.all() {
		if ev, ok := e.(TimerStatesEvent); ok {
			out = append(out, ev)
		}
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		Stakes:         []int{10},
		PayoutFraction: 0.8,
		// Draw interval long enough that tests drive draws by hand.
		DrawInterval:  time.Hour,
		GraceWindow:   50 * time.Millisecond,
		CountdownSec:  5,
		RearmDelaySec: 2,
	}
}

func newTestEngine(sessions *fakeSessions) (*Engine, *fakeBroadcaster, *fakeAccounts, *fakeHistory) {
	bc := &fakeBroadcaster{}
	accounts := newFakeAccounts()
	history := &fakeHistory{}
	e := NewEngine(testConfig(), sessions, accounts, history, bc)
	return e, bc, accounts, history
}

func seatedPlayers(stake int, userIDs ...uint) []models.GameSession {
	out := make([]models.GameSession, 0, len(userIDs))
	for i, id := range userIDs {
		out = append(out, models.GameSession{
			ID:     uint(i + 1),
			UserID: id,
			Stake:  stake,
			CardID: i + 1,
			Status: models.SessionCardSelected,
		})
	}
	return out
}
