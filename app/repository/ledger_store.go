package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cordial-ai/cordial/app/models"
	"github.com/cordial-ai/cordial/internal/pkg/ledger"
)

// ledgerStore implements ledger.Store on GORM/MySQL. Every mutation is a
// single conditional statement or a short transaction; the observed
// balance is re-read afterwards for reporting only, never as input to a
// follow-up write.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates the entitlement store backing the credit ledger.
func NewLedgerStore(db *gorm.DB) ledger.Store {
	return &ledgerStore{db: db}
}

func (s *ledgerStore) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *ledgerStore) CreateAccount(ctx context.Context, account *models.Account) (bool, error) {
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(account)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (s *ledgerStore) DebitIfSufficient(ctx context.Context, email string, amount int64) (int64, bool, error) {
	tx := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("email = ? AND credit_balance >= ?", email, amount).
		UpdateColumn("credit_balance", gorm.Expr("credit_balance - ?", amount))
	if tx.Error != nil {
		return 0, false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, false, nil
	}

	balance, err := s.readBalance(ctx, email)
	if err != nil {
		return 0, true, err
	}
	return balance, true, nil
}

func (s *ledgerStore) UpsertCredit(ctx context.Context, email string, amount int64) (int64, error) {
	if err := upsertCredit(s.db.WithContext(ctx), email, amount); err != nil {
		return 0, err
	}
	return s.readBalance(ctx, email)
}

func (s *ledgerStore) ClaimDailyIfEligible(ctx context.Context, email string, grant int64, boundary, now time.Time) (int64, bool, error) {
	tx := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("email = ? AND (last_daily_claim IS NULL OR last_daily_claim < ?)", email, boundary).
		UpdateColumns(map[string]interface{}{
			"credit_balance":   gorm.Expr("credit_balance + ?", grant),
			"last_daily_claim": now,
		})
	if tx.Error != nil {
		return 0, false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, false, nil
	}

	balance, err := s.readBalance(ctx, email)
	if err != nil {
		return 0, true, err
	}
	return balance, true, nil
}

func (s *ledgerStore) ApplyPaymentEvent(ctx context.Context, event *models.PaymentEvent) (bool, error) {
	applied := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).Create(event)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Row exists, so the credit it carries already committed.
			return nil
		}

		if err := upsertCredit(tx, event.Email, event.Credits); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.PaymentEvent{}).
			Where("id = ?", event.ID).
			UpdateColumn("processed_at", now).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// upsertCredit increments the balance in one statement, creating the
// account with amount as the initial balance when missing.
func upsertCredit(db *gorm.DB, email string, amount int64) error {
	account := models.Account{
		Email:         email,
		Status:        models.STATUS_ACTIVE,
		CreditBalance: amount,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"credit_balance": gorm.Expr("credit_balance + ?", amount),
		}),
	}).Create(&account).Error
}

func (s *ledgerStore) readBalance(ctx context.Context, email string) (int64, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Select("credit_balance").
		Where("email = ?", email).First(&account).Error; err != nil {
		return 0, err
	}
	return account.CreditBalance, nil
}
