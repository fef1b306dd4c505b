package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientCredits is the expected business rejection of a debit.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrAlreadyClaimed is returned when the daily grant was already issued
	// within the current claim window.
	ErrAlreadyClaimed = errors.New("daily credits already claimed")
	// ErrAccountNotFound is returned by stores for missing accounts. The
	// ledger normally recovers from it by provisioning the account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrStoreUnavailable wraps connectivity or query failures of the
	// entitlement store. Callers must never confuse it with a business
	// rejection like ErrInsufficientCredits.
	ErrStoreUnavailable = errors.New("entitlement store unavailable")
)

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
