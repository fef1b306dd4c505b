package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	account, err := NewAccount("user@example.com", "User", "https://example.com/a.png", 15)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", account.Email)
	assert.Equal(t, int64(15), account.CreditBalance)
	assert.Equal(t, STATUS_ACTIVE, account.Status)
	assert.True(t, account.IsActive())
}

func TestNewAccountRejectsBadEmail(t *testing.T) {
	cases := []string{"", "notanemail", "a@b"}
	for _, email := range cases {
		if _, err := NewAccount(email, "User", "", 15); err == nil {
			t.Fatalf("expected email %q to be rejected", email)
		}
	}
}

func TestAccountValidateRejectsNegativeBalance(t *testing.T) {
	account := &Account{
		Email:         "user@example.com",
		Status:        STATUS_ACTIVE,
		CreditBalance: -1,
	}
	assert.Error(t, account.Validate())
}

func TestAccountValidateRejectsUnknownStatus(t *testing.T) {
	account := &Account{
		Email:  "user@example.com",
		Status: "suspended",
	}
	assert.Error(t, account.Validate())
}

func TestWaitlistEntryValidate(t *testing.T) {
	entry := &WaitlistEntry{Email: "user@example.com"}
	assert.NoError(t, entry.Validate())

	entry = &WaitlistEntry{Email: "nope"}
	assert.Error(t, entry.Validate())

	entry = &WaitlistEntry{}
	assert.Error(t, entry.Validate())
}
