package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quarhire/internal/domain"

	"github.com/shopspring/decimal"
)

const serviceName = "paystack"

var ErrNotConfigured = domain.ConfigError{Service: serviceName}

type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

func NewClient(secretKey, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &Client{
		secretKey: strings.TrimSpace(secretKey),
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
	}
}

func (c *Client) Configured() bool { return c != nil && c.secretKey != "" }

// Verification is the normalized result of a transaction lookup.
type Verification struct {
	Reference string          `json:"reference"`
	Paid      bool            `json:"paid"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	GatewayID string          `json:"gatewayId"`
	PaidAt    string          `json:"paidAt,omitempty"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID        int64  `json:"id"`
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		PaidAt    string `json:"paid_at"`
	} `json:"data"`
}

// VerifyTransaction looks a reference up. Amounts come back in minor units.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (Verification, error) {
	if !c.Configured() {
		return Verification{}, ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return Verification{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Verification{}, &domain.UpstreamError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Verification{}, &domain.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Verification{}, &domain.UpstreamError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var out verifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Verification{}, &domain.UpstreamError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("decode verify response: %w", err),
		}
	}
	if !out.Status {
		return Verification{}, &domain.UpstreamError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        errors.New(out.Message),
		}
	}

	ref := out.Data.Reference
	if ref == "" {
		ref = reference
	}
	return Verification{
		Reference: ref,
		Paid:      strings.EqualFold(out.Data.Status, "success"),
		Status:    out.Data.Status,
		Amount:    decimal.New(out.Data.Amount, -2),
		Currency:  out.Data.Currency,
		GatewayID: fmt.Sprintf("%d", out.Data.ID),
		PaidAt:    out.Data.PaidAt,
	}, nil
}
