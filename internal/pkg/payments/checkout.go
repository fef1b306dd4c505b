package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cordial-ai/cordial/internal/pkg/env"
)

// CheckoutClient wraps the provider's checkout-session API. It is a thin
// boundary: create a session, return its hosted URL.
type CheckoutClient struct {
	apiURL     string
	secretKey  string
	successURL string
	cancelURL  string
	priceCents int
	httpClient *http.Client
}

// NewCheckoutClientFromEnv builds the checkout client from environment config.
func NewCheckoutClientFromEnv() *CheckoutClient {
	return &CheckoutClient{
		apiURL:     env.GetEnv("PAYMENT_CHECKOUT_URL", ""),
		secretKey:  env.GetEnv("PAYMENT_SECRET_KEY", ""),
		successURL: env.GetEnv("CHECKOUT_SUCCESS_URL", ""),
		cancelURL:  env.GetEnv("CHECKOUT_CANCEL_URL", ""),
		priceCents: env.GetEnvInt("CREDIT_PRICE_CENTS", 50),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession opens a hosted checkout for the given credit pack and
// returns the URL the client should be redirected to. The credited email
// and amount travel as metadata and come back on the webhook.
func (c *CheckoutClient) CreateSession(ctx context.Context, email string, credits int64) (string, error) {
	if c.apiURL == "" || c.secretKey == "" {
		return "", fmt.Errorf("checkout is not configured")
	}
	if credits <= 0 {
		return "", fmt.Errorf("credits must be positive, got %d", credits)
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("customer_email", email)
	form.Set("client_reference_id", uuid.NewString())
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("metadata[credits]", strconv.FormatInt(credits, 10))
	form.Set("line_items[0][name]", fmt.Sprintf("%d Cordial credits", credits))
	form.Set("line_items[0][amount]", strconv.FormatInt(credits*int64(c.priceCents), 10))
	form.Set("line_items[0][currency]", "usd")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read checkout response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checkout provider error (%d): %s", resp.StatusCode, string(body))
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("failed to decode checkout response: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("checkout provider returned no session url")
	}
	return session.URL, nil
}
