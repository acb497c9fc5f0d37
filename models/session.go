package models

import "time"

// Session status values for a stake lobby.
const (
	SessionCardSelected = "card_selected" // card picked, waiting for the round
	SessionPlaying      = "playing"       // round in progress
)

// GameSession is one player's seat in a stake lobby: which card they hold
// and whether they are waiting or mid-round. Rows are purged when the
// round for their stake ends.
type GameSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Stake     int       `gorm:"index" json:"stake"` // 10, 20, 50, 100
	CardID    int       `json:"card_id"`
	Status    string    `gorm:"index" json:"status"` // card_selected | playing
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
