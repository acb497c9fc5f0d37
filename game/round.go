package game

import (
	"errors"
	"time"
)

var (
	ErrNoActiveRound    = errors.New("no active round for this stake")
	ErrGameAlreadyEnded = errors.New("game already ended")
)

// WinClaim is one accepted bingo claim: a player and the card they won on.
type WinClaim struct {
	UserID uint `json:"user_id"`
	CardID int  `json:"card_id"`
}

// Round is the live state of one stake's bingo round. All fields are
// guarded by the engine mutex.
type Round struct {
	Stake        int
	Called       []string // draw order, append-only
	Remaining    []string // shuffled, consumed front-first
	Drawing      bool
	Ended        bool
	Winners      []WinClaim
	GraceActive  bool
	PrizePool    float64
	Participants int // players at round start
	StartedAt    time.Time

	drawCancel chan struct{}
	graceTimer *time.Timer
}

// stopDraw halts the draw loop. Idempotent.
func (r *Round) stopDraw() {
	if r.drawCancel != nil {
		close(r.drawCancel)
		r.drawCancel = nil
	}
	r.Drawing = false
}

// cancelHandles stops the draw loop and any armed grace timer. Must be
// called before a round is replaced or removed from the registry.
func (r *Round) cancelHandles() {
	r.stopDraw()
	if r.graceTimer != nil {
		r.graceTimer.Stop()
		r.graceTimer = nil
	}
}

func (r *Round) hasClaim(userID uint, cardID int) bool {
	for _, w := range r.Winners {
		if w.UserID == userID && w.CardID == cardID {
			return true
		}
	}
	return false
}
