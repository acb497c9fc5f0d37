package store

import (
	"fmt"

	"github.com/habeshabingo/rounds-backend/models"
	"gorm.io/gorm"
)

type gormHistoryStore struct {
	db *gorm.DB
}

func NewHistoryStore(db *gorm.DB) HistoryStore {
	return &gormHistoryStore{db: db}
}

func (s *gormHistoryStore) Append(rec *models.WinHistory) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("append win history for user %d: %w", rec.UserID, err)
	}
	return nil
}
