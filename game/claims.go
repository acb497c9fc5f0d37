package game

import (
	"encoding/json"
	"time"

	"github.com/habeshabingo/rounds-backend/models"
	"github.com/habeshabingo/rounds-backend/utils/logger"
	"gorm.io/datatypes"
)

// SubmitClaim records a bingo claim. The first claim of a round stops the
// draw and opens the grace window; later claims inside the window join the
// split. A repeated (user, card) pair is a silent no-op.
func (e *Engine) SubmitClaim(stake int, userID uint, cardID int) error {
	e.mu.Lock()
	r, ok := e.rounds[stake]
	if !ok {
		e.mu.Unlock()
		return ErrNoActiveRound
	}
	if r.Ended {
		e.mu.Unlock()
		return ErrGameAlreadyEnded
	}
	if r.hasClaim(userID, cardID) {
		e.mu.Unlock()
		logger.Debugf("[stake %d] duplicate claim from user %d card %d", stake, userID, cardID)
		return nil
	}

	first := !r.GraceActive
	if first {
		// Check-then-arm is atomic under the engine lock: exactly one
		// grace timer per round. The timer carries the round identity so
		// a fire queued behind the lock cannot touch a successor round.
		r.GraceActive = true
		r.stopDraw()
		r.graceTimer = time.AfterFunc(e.graceWindow, func() { e.finalizeRound(stake, r) })
	}
	r.Winners = append(r.Winners, WinClaim{UserID: userID, CardID: cardID})
	count := len(r.Winners)
	e.mu.Unlock()

	if first {
		logger.Infof("[stake %d] first claim by user %d card %d, grace window open", stake, userID, cardID)
		e.bc.Broadcast(RoundStoppedEvent{Type: EventRoundStopped, Stake: stake, FirstWinner: &userID})
	}
	e.bc.Broadcast(WinnerAnnouncedEvent{
		Type:   EventWinnerAnnounced,
		Stake:  stake,
		UserID: userID,
		CardID: cardID,
		Count:  count,
	})
	return nil
}

// Finalize ends the stake's current round. See finalizeRound.
func (e *Engine) Finalize(stake int) {
	e.mu.Lock()
	r, ok := e.rounds[stake]
	e.mu.Unlock()
	if ok {
		e.finalizeRound(stake, r)
	}
}

// finalizeRound ends one specific round exactly once: splits the pool
// across collected winners, credits balances and earnings, writes
// history, purges the stake's sessions, and broadcasts the outcome.
// Reached from the grace timer, from pool exhaustion, or via Finalize;
// every path after the first is a no-op. A round that is no longer the
// registry's entry for the stake is ignored: the engine stays responsive
// during finalize I/O, so a successor round may already be live.
func (e *Engine) finalizeRound(stake int, r *Round) {
	e.mu.Lock()
	if cur, ok := e.rounds[stake]; !ok || cur != r || r.Ended {
		e.mu.Unlock()
		return
	}
	// Ended is set before any store I/O so reentrant claims or a duplicate
	// timer fire bounce off the guard above.
	e.endRoundLocked(stake, r)
	winners := append([]WinClaim(nil), r.Winners...)
	pool := r.PrizePool
	participants := r.Participants
	called := append([]string(nil), r.Called...)
	e.mu.Unlock()

	if err := e.sessions.DeleteByStake(stake); err != nil {
		logger.Errorf("[stake %d] session purge failed: %v", stake, err)
	}

	if len(winners) == 0 {
		logger.Infof("[stake %d] round ended with no winners, pool retained", stake)
		e.bc.Broadcast(RoundEndedEvent{
			Type:         EventRoundEnded,
			Stake:        stake,
			Winners:      []WinClaim{},
			PrizePool:    0,
			TotalWinners: 0,
		})
	} else {
		split := pool / float64(len(winners))
		numbersJSON, err := json.Marshal(called)
		if err != nil {
			logger.Errorf("[stake %d] marshal called numbers: %v", stake, err)
			numbersJSON = []byte("[]")
		}
		wonAt := time.Now()
		for _, w := range winners {
			// One winner's persistence failure must not block the rest.
			if err := e.accounts.Credit(w.UserID, split); err != nil {
				logger.Errorf("[stake %d] credit of %.2f failed for user %d: %v", stake, split, w.UserID, err)
			}
			if err := e.accounts.RecordEarnings(w.UserID, split); err != nil {
				logger.Errorf("[stake %d] earnings update failed for user %d: %v", stake, w.UserID, err)
			}
			rec := &models.WinHistory{
				UserID:       w.UserID,
				CardID:       w.CardID,
				Stake:        stake,
				Prize:        split,
				Participants: participants,
				NumbersJSON:  datatypes.JSON(numbersJSON),
				WonAt:        wonAt,
			}
			if err := e.history.Append(rec); err != nil {
				logger.Errorf("[stake %d] history append failed for user %d: %v", stake, w.UserID, err)
			}
		}
		logger.Infof("[stake %d] round ended: %d winners share %.2f (%.2f each)", stake, len(winners), pool, split)
		e.bc.Broadcast(RoundEndedEvent{
			Type:           EventRoundEnded,
			Stake:          stake,
			Winners:        winners,
			PrizePool:      pool,
			SplitPerWinner: split,
			TotalWinners:   len(winners),
		})
	}

	e.bc.Broadcast(SessionsUpdatedEvent{Type: EventSessionsUpdated, Sessions: []models.GameSession{}})

	// Remove only the round we finalized; a restart during the store I/O
	// above may have put a live successor in the registry.
	e.mu.Lock()
	if cur, ok := e.rounds[stake]; ok && cur == r {
		delete(e.rounds, stake)
	}
	e.mu.Unlock()
}
