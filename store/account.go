package store

import (
	"fmt"

	"github.com/habeshabingo/rounds-backend/models"
	"gorm.io/gorm"
)

type gormAccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) AccountStore {
	return &gormAccountStore{db: db}
}

func (s *gormAccountStore) Credit(userID uint, amount float64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return fmt.Errorf("fetch user %d: %w", userID, err)
		}
		user.Balance += amount
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("save balance for user %d: %w", userID, err)
		}
		ledger := models.Transaction{
			UserID:       userID,
			Type:         models.PrizeTransaction,
			Amount:       amount,
			BalanceAfter: user.Balance,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return fmt.Errorf("write ledger for user %d: %w", userID, err)
		}
		return nil
	})
}

func (s *gormAccountStore) Debit(userID uint, amount float64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return fmt.Errorf("fetch user %d: %w", userID, err)
		}
		if user.Balance < amount {
			return ErrInsufficientBalance
		}
		user.Balance -= amount
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("save balance for user %d: %w", userID, err)
		}
		ledger := models.Transaction{
			UserID:       userID,
			Type:         models.StakeTransaction,
			Amount:       -amount,
			BalanceAfter: user.Balance,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return fmt.Errorf("write ledger for user %d: %w", userID, err)
		}
		return nil
	})
}

func (s *gormAccountStore) RecordEarnings(userID uint, amount float64) error {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"daily_earnings":  gorm.Expr("daily_earnings + ?", amount),
		"weekly_earnings": gorm.Expr("weekly_earnings + ?", amount),
		"total_earnings":  gorm.Expr("total_earnings + ?", amount),
	}).Error
	if err != nil {
		return fmt.Errorf("record earnings for user %d: %w", userID, err)
	}
	return nil
}
