package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cordial-ai/cordial/app/models"
	"github.com/cordial-ai/cordial/internal/pkg/env"
)

// Config carries the grant tunables. Grant size and reset hour vary per
// deployment, so they are configuration inputs rather than constants.
type Config struct {
	// DailyGrantSize is the number of credits issued per claim window.
	DailyGrantSize int64
	// SignupGrantSize seeds accounts provisioned on first contact.
	SignupGrantSize int64
	// ResetHourUTC is the fixed UTC hour at which the claim window rolls
	// over. It deliberately does not have to be midnight.
	ResetHourUTC int
}

// ConfigFromEnv reads the grant tunables from the environment.
func ConfigFromEnv() Config {
	return Config{
		DailyGrantSize:  int64(env.GetEnvInt("DAILY_CREDITS", 5)),
		SignupGrantSize: int64(env.GetEnvInt("SIGNUP_CREDITS", 15)),
		ResetHourUTC:    env.GetEnvInt("CREDITS_RESET_HOUR_UTC", 9),
	}
}

// Ledger is the sole authority over account balances. All mutation goes
// through the store's atomic primitives; the ledger itself never performs
// a read-then-write sequence on the balance.
type Ledger struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// New creates a ledger on top of the given entitlement store.
func New(store Store, cfg Config) *Ledger {
	return &Ledger{store: store, cfg: cfg, now: time.Now}
}

// TryDebit removes amount credits from the account if the balance covers
// it and returns the post-debit balance. A missing account is provisioned
// with the signup grant and the debit retried once against it.
func (l *Ledger) TryDebit(ctx context.Context, email string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	balance, ok, err := l.store.DebitIfSufficient(ctx, email, amount)
	if err != nil {
		return 0, storeErr(err)
	}
	if ok {
		return balance, nil
	}

	account, err := l.store.GetAccount(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		if err := l.provision(ctx, email); err != nil {
			return 0, err
		}
		balance, ok, err = l.store.DebitIfSufficient(ctx, email, amount)
		if err != nil {
			return 0, storeErr(err)
		}
		if ok {
			return balance, nil
		}
		balance, err = l.currentBalance(ctx, email)
		if err != nil {
			return 0, err
		}
		return balance, ErrInsufficientCredits
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return account.CreditBalance, ErrInsufficientCredits
}

// Credit adds amount credits to the account, creating it with amount as
// the initial balance when missing, and returns the new balance.
func (l *Ledger) Credit(ctx context.Context, email string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	balance, err := l.store.UpsertCredit(ctx, email, amount)
	if err != nil {
		return 0, storeErr(err)
	}
	return balance, nil
}

// ClaimDailyGrant issues the daily allotment once per claim window. It
// returns the granted amount and the new balance, or ErrAlreadyClaimed
// when the window's grant was already issued.
func (l *Ledger) ClaimDailyGrant(ctx context.Context, email string) (int64, int64, error) {
	now := l.now().UTC()
	boundary := lastResetBoundary(now, l.cfg.ResetHourUTC)

	balance, ok, err := l.store.ClaimDailyIfEligible(ctx, email, l.cfg.DailyGrantSize, boundary, now)
	if err != nil {
		return 0, 0, storeErr(err)
	}
	if ok {
		return l.cfg.DailyGrantSize, balance, nil
	}

	account, err := l.store.GetAccount(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		if err := l.provision(ctx, email); err != nil {
			return 0, 0, err
		}
		balance, ok, err = l.store.ClaimDailyIfEligible(ctx, email, l.cfg.DailyGrantSize, boundary, now)
		if err != nil {
			return 0, 0, storeErr(err)
		}
		if ok {
			return l.cfg.DailyGrantSize, balance, nil
		}
		account, err = l.store.GetAccount(ctx, email)
		if err != nil {
			return 0, 0, storeErr(err)
		}
		return 0, account.CreditBalance, ErrAlreadyClaimed
	}
	if err != nil {
		return 0, 0, storeErr(err)
	}
	return 0, account.CreditBalance, ErrAlreadyClaimed
}

// ApplyPayment credits a payment event exactly once. The event row and the
// balance increment commit in one store transaction, so a replayed
// delivery either sees the recorded event and becomes a no-op, or the
// whole application never happened and the retry applies it cleanly.
func (l *Ledger) ApplyPayment(ctx context.Context, event *models.PaymentEvent) (int64, bool, error) {
	if event == nil || event.EventID == "" {
		return 0, false, errors.New("payment event requires an event id")
	}
	if event.Email == "" || event.Credits <= 0 {
		return 0, false, fmt.Errorf("payment event %s requires a target email and positive credits", event.EventID)
	}

	applied, err := l.store.ApplyPaymentEvent(ctx, event)
	if err != nil {
		return 0, false, storeErr(err)
	}

	balance, err := l.currentBalance(ctx, event.Email)
	if err != nil {
		return 0, applied, err
	}
	return balance, applied, nil
}

// Balance returns the spendable balance, provisioning a missing account
// with the signup grant.
func (l *Ledger) Balance(ctx context.Context, email string) (int64, error) {
	account, err := l.store.GetAccount(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		if err := l.provision(ctx, email); err != nil {
			return 0, err
		}
		return l.currentBalance(ctx, email)
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return account.CreditBalance, nil
}

// EnsureAccount provisions or refreshes the account on login and stamps
// the last-login time. Informational fields only; the balance is seeded
// exactly once via the signup grant.
func (l *Ledger) EnsureAccount(ctx context.Context, email, name, avatarURL string) (*models.Account, error) {
	account, err := models.NewAccount(email, name, avatarURL, l.cfg.SignupGrantSize)
	if err != nil {
		return nil, err
	}
	now := l.now()
	account.LastLoginAt = &now

	if _, err := l.store.CreateAccount(ctx, account); err != nil {
		return nil, storeErr(err)
	}

	stored, err := l.store.GetAccount(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	return stored, nil
}

func (l *Ledger) provision(ctx context.Context, email string) error {
	account, err := models.NewAccount(email, "", "", l.cfg.SignupGrantSize)
	if err != nil {
		return err
	}
	if _, err := l.store.CreateAccount(ctx, account); err != nil {
		return storeErr(err)
	}
	return nil
}

func (l *Ledger) currentBalance(ctx context.Context, email string) (int64, error) {
	account, err := l.store.GetAccount(ctx, email)
	if err != nil {
		return 0, storeErr(err)
	}
	return account.CreditBalance, nil
}
