package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordial-ai/cordial/app/models"
)

func paymentEvent(id, email string, credits int64) *models.PaymentEvent {
	return &models.PaymentEvent{
		EventID:   id,
		EventType: "checkout.session.completed",
		Email:     email,
		Credits:   credits,
	}
}

func testConfig() Config {
	return Config{
		DailyGrantSize:  5,
		SignupGrantSize: 15,
		ResetHourUTC:    9,
	}
}

func newTestLedger(store Store) *Ledger {
	l := New(store, testConfig())
	l.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestTryDebitProvisionsMissingAccount(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	balance, err := l.TryDebit(context.Background(), "new@example.com", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(14), balance, "signup grant minus one debit")
}

func TestTryDebitInsufficient(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	// Drain the signup grant
	for i := 0; i < 15; i++ {
		_, err := l.TryDebit(context.Background(), "user@example.com", 1)
		require.NoError(t, err)
	}

	balance, err := l.TryDebit(context.Background(), "user@example.com", 1)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, int64(0), balance)
}

func TestTryDebitRejectsNonPositiveAmount(t *testing.T) {
	l := newTestLedger(NewMemoryStore())

	_, err := l.TryDebit(context.Background(), "user@example.com", 0)
	assert.Error(t, err)
	_, err = l.TryDebit(context.Background(), "user@example.com", -3)
	assert.Error(t, err)
}

func TestTryDebitStoreUnavailable(t *testing.T) {
	store := NewMemoryStore()
	store.FailWith = errors.New("connection refused")
	l := newTestLedger(store)

	_, err := l.TryDebit(context.Background(), "user@example.com", 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInsufficientCredits)
}

func TestConcurrentDebitsNeverOverspend(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	// Seed an account with exactly 5 credits
	_, err := l.Credit(context.Background(), "user@example.com", 5)
	require.NoError(t, err)

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.TryDebit(context.Background(), "user@example.com", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded, "exactly the seeded credits may be spent")

	balance, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestConcurrentCreditsAllApply(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Credit(context.Background(), "user@example.com", 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*3), balance)
}

func TestClaimDailyGrantOncePerWindow(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	granted, newTotal, err := l.ClaimDailyGrant(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5), granted)
	assert.Equal(t, int64(20), newTotal, "signup grant plus daily grant")

	// Second claim in the same window is rejected but reports the balance
	granted, newTotal, err = l.ClaimDailyGrant(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.Equal(t, int64(0), granted)
	assert.Equal(t, int64(20), newTotal)

	// After the next reset boundary the claim succeeds again
	l.now = func() time.Time { return time.Date(2026, 3, 11, 9, 0, 1, 0, time.UTC) }
	granted, newTotal, err = l.ClaimDailyGrant(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5), granted)
	assert.Equal(t, int64(25), newTotal)
}

func TestClaimBeforeResetHourUsesPreviousDay(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	// Claim at 12:00 UTC on day one
	_, _, err := l.ClaimDailyGrant(context.Background(), "user@example.com")
	require.NoError(t, err)

	// 08:59 the next day is still the same claim window
	l.now = func() time.Time { return time.Date(2026, 3, 11, 8, 59, 0, 0, time.UTC) }
	_, _, err = l.ClaimDailyGrant(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestConcurrentClaimsGrantOnce(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	// Provision up front so every goroutine races on the claim itself
	_, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)

	const attempts = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := l.ClaimDailyGrant(context.Background(), "user@example.com"); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted, "only one claim per window may succeed")

	balance, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)
}

func TestApplyPaymentIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	event := paymentEvent("evt_1", "buyer@example.com", 20)

	balance, applied, err := l.ApplyPayment(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(20), balance)

	// Replayed delivery credits nothing
	balance, applied, err = l.ApplyPayment(context.Background(), paymentEvent("evt_1", "buyer@example.com", 20))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, int64(20), balance)

	// A distinct event id applies normally
	balance, applied, err = l.ApplyPayment(context.Background(), paymentEvent("evt_2", "buyer@example.com", 20))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(40), balance)
}

func TestApplyPaymentRejectsBadEvents(t *testing.T) {
	l := newTestLedger(NewMemoryStore())

	_, _, err := l.ApplyPayment(context.Background(), nil)
	assert.Error(t, err)

	_, _, err = l.ApplyPayment(context.Background(), paymentEvent("evt_3", "", 20))
	assert.Error(t, err)

	_, _, err = l.ApplyPayment(context.Background(), paymentEvent("evt_4", "buyer@example.com", 0))
	assert.Error(t, err)
}

func TestZeroBalanceLifecycle(t *testing.T) {
	store := NewMemoryStore()
	l := New(store, Config{DailyGrantSize: 5, SignupGrantSize: 0, ResetHourUTC: 9})
	l.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	// Fresh account starts empty, a debit is rejected
	_, err := l.TryDebit(context.Background(), "user@example.com", 1)
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// Claiming the daily grant funds exactly five generations
	granted, newTotal, err := l.ClaimDailyGrant(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5), granted)
	assert.Equal(t, int64(5), newTotal)

	for i := 0; i < 5; i++ {
		_, err := l.TryDebit(context.Background(), "user@example.com", 1)
		require.NoError(t, err)
	}

	_, err = l.TryDebit(context.Background(), "user@example.com", 1)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestBalanceProvisionsWithSignupGrant(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	balance, err := l.Balance(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(15), balance)
}

func TestEnsureAccountSeedsBalanceOnce(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	account, err := l.EnsureAccount(context.Background(), "user@example.com", "User", "")
	require.NoError(t, err)
	assert.Equal(t, int64(15), account.CreditBalance)

	// Spend a credit, then log in again: the balance must not reset
	_, err = l.TryDebit(context.Background(), "user@example.com", 1)
	require.NoError(t, err)

	account, err = l.EnsureAccount(context.Background(), "user@example.com", "User", "")
	require.NoError(t, err)
	assert.Equal(t, int64(14), account.CreditBalance)
}

func TestEmailsAreCaseSensitiveKeys(t *testing.T) {
	store := NewMemoryStore()
	l := newTestLedger(store)

	_, err := l.Credit(context.Background(), "User@example.com", 10)
	require.NoError(t, err)

	balance, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(15), balance, "lowercase variant is a distinct, freshly provisioned account")
}
