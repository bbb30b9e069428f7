// Package payments wraps the external charge gateway. The gateway itself
// is a collaborator; this package only consumes its REST surface.
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
)

// Charge is the gateway's record of a completed payment. Non-card payment
// methods never reach the gateway and synthesize a zero Charge.
type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Gateway creates charges. The token is opaque: it was minted client-side
// by the gateway's own JS, so no card details ever transit this service.
type Gateway interface {
	CreateCharge(ctx context.Context, amountCents int64, currency, token, description string) (Charge, error)
}

// StripeGateway posts to the Stripe charges API with a bounded client
// timeout. An unbounded gateway call would stall the whole checkout.
type StripeGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		secretKey: secretKey,
		baseURL:   "https://api.stripe.com/v1",
		client:    &http.Client{Timeout: 20 * time.Second},
	}
}

// NewStripeGatewayURL is like NewStripeGateway against a custom endpoint
// (tests, sandboxes).
func NewStripeGatewayURL(secretKey, baseURL string) *StripeGateway {
	g := NewStripeGateway(secretKey)
	g.baseURL = strings.TrimSuffix(baseURL, "/")
	return g
}

func (g *StripeGateway) CreateCharge(ctx context.Context, amountCents int64, currency, token, description string) (Charge, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("source", token)
	form.Set("description", description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return Charge{}, fmt.Errorf("build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(g.secretKey, "")

	resp, err := g.client.Do(req)
	if err != nil {
		return Charge{}, fmt.Errorf("charge request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Charge{}, fmt.Errorf("read charge response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return Charge{}, fmt.Errorf("charge rejected: %s (%s)", apiErr.Error.Message, apiErr.Error.Code)
		}
		return Charge{}, fmt.Errorf("charge rejected: status %d", resp.StatusCode)
	}

	var charge Charge
	if err := json.Unmarshal(body, &charge); err != nil {
		return Charge{}, fmt.Errorf("decode charge: %w", err)
	}
	return charge, nil
}
