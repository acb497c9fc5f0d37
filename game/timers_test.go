package game

import (
	"testing"

	"github.com/habeshabingo/rounds-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerWaitingToCountdown(t *testing.T) {
	sessions := newFakeSessions(seatedPlayers(10, 1, 2)...)
	e, _, _, _ := newTestEngine(sessions)

	// Initial re-arm delay counts down while players are seated.
	for i := 0; i < e.rearmDelaySec; i++ {
		e.tickTimers()
	}

	states := e.TimerStates()
	assert.Equal(t, PhaseCountdown, states[10].Phase)
	assert.Equal(t, e.countdownSec, states[10].SecondsLeft)
	assert.Equal(t, 2, states[10].Participants)
	assert.InDelta(t, 2*10*0.8, states[10].PrizePool, 1e-9)
}

func TestTimerStaysWaitingWithoutPlayers(t *testing.T) {
	sessions := newFakeSessions()
	e, _, _, _ := newTestEngine(sessions)

	for i := 0; i < e.rearmDelaySec+3; i++ {
		e.tickTimers()
	}

	states := e.TimerStates()
	assert.Equal(t, PhaseWaiting, states[10].Phase)
	assert.Equal(t, 0, states[10].SecondsLeft)
	assert.Equal(t, 0, states[10].Participants)
}

func TestTimerInProgressDerivedFromSessions(t *testing.T) {
	sessions := newFakeSessions(models.GameSession{ID: 1, UserID: 1, Stake: 10, Status: models.SessionPlaying})
	e, _, _, _ := newTestEngine(sessions)

	e.tickTimers()
	assert.Equal(t, PhaseInProgress, e.TimerStates()[10].Phase)

	// Round over: playing sessions purged, phase falls back to waiting
	// with the re-arm delay.
	require.NoError(t, sessions.DeleteByStake(10))
	e.tickTimers()
	states := e.TimerStates()
	assert.Equal(t, PhaseWaiting, states[10].Phase)
	assert.Equal(t, e.rearmDelaySec, states[10].SecondsLeft)
}

func TestCountdownRestartsWhilePlayersWait(t *testing.T) {
	sessions := newFakeSessions(seatedPlayers(10, 1)...)
	e, _, _, _ := newTestEngine(sessions)

	for i := 0; i < e.rearmDelaySec; i++ {
		e.tickTimers()
	}
	require.Equal(t, PhaseCountdown, e.TimerStates()[10].Phase)

	// Window runs out with the player still seated: it restarts, a round
	// start needs an explicit command.
	for i := 0; i < e.countdownSec; i++ {
		e.tickTimers()
	}
	states := e.TimerStates()
	assert.Equal(t, PhaseCountdown, states[10].Phase)
	assert.Equal(t, e.countdownSec, states[10].SecondsLeft)
}

func TestCountdownRevertsWhenPlayersLeave(t *testing.T) {
	sessions := newFakeSessions(seatedPlayers(10, 1)...)
	e, _, _, _ := newTestEngine(sessions)

	for i := 0; i < e.rearmDelaySec; i++ {
		e.tickTimers()
	}
	require.Equal(t, PhaseCountdown, e.TimerStates()[10].Phase)

	sessions.mu.Lock()
	sessions.sessions = nil
	sessions.mu.Unlock()

	for i := 0; i < e.countdownSec; i++ {
		e.tickTimers()
	}
	states := e.TimerStates()
	assert.Equal(t, PhaseWaiting, states[10].Phase)
	assert.Equal(t, e.rearmDelaySec, states[10].SecondsLeft)
}

func TestTimerBroadcastOnlyOnChange(t *testing.T) {
	sessions := newFakeSessions()
	e, bc, _, _ := newTestEngine(sessions)

	// Burn through the initial re-arm countdown until state stabilizes.
	for i := 0; i < e.rearmDelaySec; i++ {
		e.tickTimers()
	}
	stable := len(bc.timerStates())

	e.tickTimers()
	e.tickTimers()
	assert.Len(t, bc.timerStates(), stable, "no broadcast when nothing changed")

	// A seated player changes the derived fields and triggers a broadcast.
	sessions.mu.Lock()
	sessions.sessions = seatedPlayers(10, 1)
	sessions.mu.Unlock()
	e.tickTimers()
	assert.Len(t, bc.timerStates(), stable+1)
}

func TestTimerStoreErrorKeepsLastState(t *testing.T) {
	sessions := newFakeSessions(seatedPlayers(10, 1)...)
	e, _, _, _ := newTestEngine(sessions)

	e.tickTimers()
	before := e.TimerStates()[10]

	sessions.mu.Lock()
	sessions.listErr = assert.AnError
	sessions.mu.Unlock()

	e.tickTimers()
	assert.Equal(t, before, e.TimerStates()[10])
}
