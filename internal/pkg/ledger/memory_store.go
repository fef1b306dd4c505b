package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/cordial-ai/cordial/app/models"
)

// MemoryStore is an in-process Store implementation. It backs unit tests
// and local development without a database; production runs on the SQL
// store in app/repository.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	events   map[string]*models.PaymentEvent
	nextID   uint

	// FailWith, when set, makes every call return this error. Lets tests
	// exercise store-unavailable paths.
	FailWith error
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*models.Account),
		events:   make(map[string]*models.PaymentEvent),
	}
}

func (s *MemoryStore) GetAccount(_ context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	account, ok := s.accounts[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *MemoryStore) CreateAccount(_ context.Context, account *models.Account) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}

	if _, exists := s.accounts[account.Email]; exists {
		return false, nil
	}
	copied := *account
	s.nextID++
	copied.ID = s.nextID
	s.accounts[account.Email] = &copied
	return true, nil
}

func (s *MemoryStore) DebitIfSufficient(_ context.Context, email string, amount int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, false, s.FailWith
	}

	account, ok := s.accounts[email]
	if !ok || account.CreditBalance < amount {
		return 0, false, nil
	}
	account.CreditBalance -= amount
	return account.CreditBalance, true, nil
}

func (s *MemoryStore) UpsertCredit(_ context.Context, email string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, s.FailWith
	}

	account, ok := s.accounts[email]
	if !ok {
		s.nextID++
		account = &models.Account{ID: s.nextID, Email: email, Status: models.STATUS_ACTIVE}
		s.accounts[email] = account
	}
	account.CreditBalance += amount
	return account.CreditBalance, nil
}

func (s *MemoryStore) ClaimDailyIfEligible(_ context.Context, email string, grant int64, boundary, now time.Time) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, false, s.FailWith
	}

	account, ok := s.accounts[email]
	if !ok {
		return 0, false, nil
	}
	if claimedWithin(account.LastDailyClaim, boundary) {
		return 0, false, nil
	}
	claimedAt := now
	account.LastDailyClaim = &claimedAt
	account.CreditBalance += grant
	return account.CreditBalance, true, nil
}

func (s *MemoryStore) ApplyPaymentEvent(_ context.Context, event *models.PaymentEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}

	if _, exists := s.events[event.EventID]; exists {
		return false, nil
	}
	copied := *event
	processed := time.Now()
	copied.ProcessedAt = &processed
	s.events[event.EventID] = &copied

	account, ok := s.accounts[event.Email]
	if !ok {
		s.nextID++
		account = &models.Account{ID: s.nextID, Email: event.Email, Status: models.STATUS_ACTIVE}
		s.accounts[event.Email] = account
	}
	account.CreditBalance += event.Credits
	return true, nil
}
