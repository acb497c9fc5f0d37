// Package store holds the persistence collaborators the round engine
// talks to. The engine only sees the interfaces; gorm-backed
// implementations live alongside them.
package store

import (
	"errors"

	"github.com/habeshabingo/rounds-backend/models"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// SessionStore manages the per-stake lobby seats.
type SessionStore interface {
	// ListByStake returns sessions for a stake, optionally filtered by status.
	ListByStake(stake int, statuses ...string) ([]models.GameSession, error)
	// SetStatusByStake moves every session for a stake from one status to another.
	SetStatusByStake(stake int, from, to string) error
	// DeleteByStake purges all sessions for a stake.
	DeleteByStake(stake int) error
}

// AccountStore mutates player balances and earnings.
type AccountStore interface {
	// Credit adds to a user's balance and writes a prize ledger row.
	Credit(userID uint, amount float64) error
	// Debit subtracts from a user's balance; fails with ErrInsufficientBalance.
	Debit(userID uint, amount float64) error
	// RecordEarnings bumps the daily/weekly/total earnings accumulators.
	RecordEarnings(userID uint, amount float64) error
}

// HistoryStore appends completed-round win records.
type HistoryStore interface {
	Append(rec *models.WinHistory) error
}
