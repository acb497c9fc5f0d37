package store

import (
	"fmt"

	"github.com/habeshabingo/rounds-backend/models"
	"gorm.io/gorm"
)

type gormSessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) SessionStore {
	return &gormSessionStore{db: db}
}

func (s *gormSessionStore) ListByStake(stake int, statuses ...string) ([]models.GameSession, error) {
	var sessions []models.GameSession
	q := s.db.Where("stake = ?", stake)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions for stake %d: %w", stake, err)
	}
	return sessions, nil
}

func (s *gormSessionStore) SetStatusByStake(stake int, from, to string) error {
	err := s.db.Model(&models.GameSession{}).
		Where("stake = ? AND status = ?", stake, from).
		Update("status", to).Error
	if err != nil {
		return fmt.Errorf("update sessions for stake %d: %w", stake, err)
	}
	return nil
}

func (s *gormSessionStore) DeleteByStake(stake int) error {
	if err := s.db.Where("stake = ?", stake).Delete(&models.GameSession{}).Error; err != nil {
		return fmt.Errorf("purge sessions for stake %d: %w", stake, err)
	}
	return nil
}
