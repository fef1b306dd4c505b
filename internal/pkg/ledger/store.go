package ledger

import (
	"context"
	"time"

	"github.com/cordial-ai/cordial/app/models"
)

// Store is the entitlement store the ledger runs on. Implementations must
// provide the listed primitives atomically with respect to concurrent
// callers and other server processes; the ledger adds no in-process
// locking on top.
type Store interface {
	// GetAccount returns the account for email or ErrAccountNotFound.
	GetAccount(ctx context.Context, email string) (*models.Account, error)

	// CreateAccount inserts the account unless one with the same email
	// already exists. Returns false without error when it lost the race.
	CreateAccount(ctx context.Context, account *models.Account) (bool, error)

	// DebitIfSufficient atomically decrements the balance by amount only
	// if the current balance covers it. Returns the post-debit balance and
	// whether the debit was applied. A missing account reports (0, false).
	DebitIfSufficient(ctx context.Context, email string, amount int64) (int64, bool, error)

	// UpsertCredit atomically increments the balance by amount, creating
	// the account with amount as the initial balance when missing. Returns
	// the post-credit balance.
	UpsertCredit(ctx context.Context, email string, amount int64) (int64, error)

	// ClaimDailyIfEligible credits grant and stamps last_daily_claim=now in
	// one compound conditional update, guarded by last_daily_claim being
	// unset or older than boundary. Returns the post-grant balance and
	// whether the claim was applied. A missing account reports (0, false).
	ClaimDailyIfEligible(ctx context.Context, email string, grant int64, boundary, now time.Time) (int64, bool, error)

	// ApplyPaymentEvent records the event and credits event.Credits to
	// event.Email in a single transaction keyed on the unique event ID.
	// Returns false when the event was already applied.
	ApplyPaymentEvent(ctx context.Context, event *models.PaymentEvent) (bool, error)
}
