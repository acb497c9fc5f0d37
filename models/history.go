package models

import (
	"time"

	"gorm.io/datatypes"
)

// WinHistory is the append-only record of a paid-out win: one row per
// winner per round.
type WinHistory struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index" json:"user_id"`
	CardID       int            `json:"card_id"`
	Stake        int            `gorm:"index" json:"stake"`
	Prize        float64        `json:"prize"`
	Participants int            `json:"participants"` // players at round start
	NumbersJSON  datatypes.JSON `json:"numbers"`      // called numbers, draw order
	WonAt        time.Time      `json:"won_at"`
	CreatedAt    time.Time      `json:"created_at"`
}
