package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordial-ai/cordial/internal/pkg/generation"
	"github.com/cordial-ai/cordial/internal/pkg/ledger"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2026, 5, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "invalid input", err: generation.ErrInvalidInput, wantStatus: fiber.StatusBadRequest, wantError: "invalid_input"},
		{name: "insufficient credits", err: ledger.ErrInsufficientCredits, wantStatus: fiber.StatusPaymentRequired, wantError: "insufficient_credits"},
		{name: "already claimed", err: ledger.ErrAlreadyClaimed, wantStatus: fiber.StatusBadRequest, wantError: "already_claimed"},
		{name: "store unavailable", err: ledger.ErrStoreUnavailable, wantStatus: fiber.StatusServiceUnavailable, wantError: "store_unavailable"},
		{name: "wrapped store unavailable", err: errors.Join(ledger.ErrStoreUnavailable, errors.New("dial tcp")), wantStatus: fiber.StatusServiceUnavailable, wantError: "store_unavailable"},
		{name: "generation timeout", err: generation.ErrGenerationTimeout, wantStatus: fiber.StatusGatewayTimeout, wantError: "generation_timeout"},
		{name: "generation failed", err: errors.Join(generation.ErrGenerationFailed, errors.New("upstream 500")), wantStatus: fiber.StatusBadGateway, wantError: "generation_failed"},
		{name: "unknown error", err: errors.New("boom"), wantStatus: fiber.StatusInternalServerError, wantError: "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return mapServiceError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var payload map[string]string
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, tt.wantError, payload["error"])
			assert.NotEmpty(t, payload["message"])
		})
	}
}
