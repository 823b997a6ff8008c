package hubtel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quarhire/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	serviceName     = "hubtel"
	successCode     = "0000"
	maxResponseBody = 1 << 20
)

// ErrNotConfigured is returned by every call when credentials are missing.
var ErrNotConfigured = domain.ConfigError{Service: serviceName}

type Config struct {
	ClientID              string
	ClientSecret          string
	MerchantAccountNumber string
	CallbackURL           string
	ReturnURL             string
	CancellationURL       string
	CheckoutBaseURL       string
	StatusBaseURL         string
}

// Configured reports whether the credentials needed for any call are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.ClientID) != "" &&
		strings.TrimSpace(c.ClientSecret) != "" &&
		strings.TrimSpace(c.MerchantAccountNumber) != ""
}

type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client. A nil httpClient gets a 30s timeout default.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg.CheckoutBaseURL = strings.TrimRight(cfg.CheckoutBaseURL, "/")
	cfg.StatusBaseURL = strings.TrimRight(cfg.StatusBaseURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) Configured() bool { return c != nil && c.cfg.Configured() }

type CheckoutRequest struct {
	TotalAmount       decimal.Decimal
	Description       string
	ClientReference   string
	PayeeName         string
	PayeeMobileNumber string
	PayeeEmail        string
}

type CheckoutResult struct {
	ClientReference   string `json:"clientReference"`
	CheckoutURL       string `json:"checkoutUrl"`
	CheckoutID        string `json:"checkoutId"`
	CheckoutDirectURL string `json:"checkoutDirectUrl"`
}

type checkoutBody struct {
	TotalAmount           float64 `json:"totalAmount"`
	Description           string  `json:"description"`
	CallbackURL           string  `json:"callbackUrl"`
	ReturnURL             string  `json:"returnUrl"`
	CancellationURL       string  `json:"cancellationUrl"`
	MerchantAccountNumber string  `json:"merchantAccountNumber"`
	ClientReference       string  `json:"clientReference"`
	PayeeName             string  `json:"payeeName,omitempty"`
	PayeeMobileNumber     string  `json:"payeeMobileNumber,omitempty"`
	PayeeEmail            string  `json:"payeeEmail,omitempty"`
}

type envelope struct {
	ResponseCode string          `json:"responseCode"`
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
}

// InitiateCheckout creates a hosted checkout session for one booking reference.
func (c *Client) InitiateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	if !c.Configured() {
		return CheckoutResult{}, ErrNotConfigured
	}
	payload, err := json.Marshal(checkoutBody{
		TotalAmount:           req.TotalAmount.Round(2).InexactFloat64(),
		Description:           req.Description,
		CallbackURL:           c.cfg.CallbackURL,
		ReturnURL:             c.cfg.ReturnURL,
		CancellationURL:       c.cfg.CancellationURL,
		MerchantAccountNumber: c.cfg.MerchantAccountNumber,
		ClientReference:       req.ClientReference,
		PayeeName:             req.PayeeName,
		PayeeMobileNumber:     req.PayeeMobileNumber,
		PayeeEmail:            req.PayeeEmail,
	})
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("encode checkout: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.CheckoutBaseURL+"/items/initiate", bytes.NewReader(payload))
	if err != nil {
		return CheckoutResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	env, err := c.do(httpReq)
	if err != nil {
		return CheckoutResult{}, err
	}

	var out CheckoutResult
	if err := json.Unmarshal(env.Data, &out); err != nil || out.CheckoutURL == "" {
		return CheckoutResult{}, &domain.UpstreamError{
			Service:      serviceName,
			StatusCode:   http.StatusOK,
			ResponseCode: env.ResponseCode,
			Body:         string(env.Data),
			Err:          fmt.Errorf("checkout response has no checkoutUrl"),
		}
	}
	if out.ClientReference == "" {
		out.ClientReference = req.ClientReference
	}
	return out, nil
}

// PaymentStatus is the normalized gateway view of a transaction.
type PaymentStatus string

const (
	StatusPaid     PaymentStatus = "Paid"
	StatusUnpaid   PaymentStatus = "Unpaid"
	StatusRefunded PaymentStatus = "Refunded"
	StatusUnknown  PaymentStatus = "Unknown"
)

// NormalizeStatus maps the gateway's free-form status onto PaymentStatus.
func NormalizeStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "success", "successful":
		return StatusPaid
	case "unpaid", "pending", "failed", "cancelled", "canceled", "expired":
		return StatusUnpaid
	case "refunded":
		return StatusRefunded
	}
	return StatusUnknown
}

type TransactionStatus struct {
	ClientReference       string          `json:"clientReference"`
	Status                PaymentStatus   `json:"status"`
	RawStatus             string          `json:"rawStatus"`
	TransactionID         string          `json:"transactionId,omitempty"`
	ExternalTransactionID string          `json:"externalTransactionId,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	Charges               decimal.Decimal `json:"charges"`
	PaymentMethod         string          `json:"paymentMethod,omitempty"`
	Date                  string          `json:"date,omitempty"`
}

type statusData struct {
	Date                  string          `json:"date"`
	Status                string          `json:"status"`
	TransactionID         string          `json:"transactionId"`
	ExternalTransactionID string          `json:"externalTransactionId"`
	PaymentMethod         string          `json:"paymentMethod"`
	ClientReference       string          `json:"clientReference"`
	Amount                decimal.Decimal `json:"amount"`
	Charges               decimal.Decimal `json:"charges"`
}

// GetTransactionStatus asks the gateway what happened to a client reference.
// A failed query is always an error, never a status.
func (c *Client) GetTransactionStatus(ctx context.Context, clientReference string) (TransactionStatus, error) {
	if !c.Configured() {
		return TransactionStatus{}, ErrNotConfigured
	}
	endpoint := fmt.Sprintf("%s/transactions/%s/status?%s",
		c.cfg.StatusBaseURL,
		url.PathEscape(c.cfg.MerchantAccountNumber),
		url.Values{"clientReference": {clientReference}}.Encode(),
	)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TransactionStatus{}, err
	}

	env, err := c.do(httpReq)
	if err != nil {
		return TransactionStatus{}, err
	}

	var d statusData
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return TransactionStatus{}, &domain.UpstreamError{
			Service:      serviceName,
			StatusCode:   http.StatusOK,
			ResponseCode: env.ResponseCode,
			Body:         string(env.Data),
			Err:          fmt.Errorf("decode status data: %w", err),
		}
	}
	ref := d.ClientReference
	if ref == "" {
		ref = clientReference
	}
	return TransactionStatus{
		ClientReference:       ref,
		Status:                NormalizeStatus(d.Status),
		RawStatus:             d.Status,
		TransactionID:         d.TransactionID,
		ExternalTransactionID: d.ExternalTransactionID,
		Amount:                d.Amount,
		Charges:               d.Charges,
		PaymentMethod:         d.PaymentMethod,
		Date:                  d.Date,
	}, nil
}

// do sends an authenticated request and unwraps the response envelope.
func (c *Client) do(req *http.Request) (envelope, error) {
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, &domain.UpstreamError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return envelope{}, &domain.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(body, &env)
		return envelope{}, &domain.UpstreamError{
			Service:      serviceName,
			StatusCode:   resp.StatusCode,
			ResponseCode: env.ResponseCode,
			Body:         string(body),
			IPNotAllowed: ipRejected(resp.StatusCode, body),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, &domain.UpstreamError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	if env.ResponseCode != successCode {
		return envelope{}, &domain.UpstreamError{
			Service:      serviceName,
			StatusCode:   resp.StatusCode,
			ResponseCode: env.ResponseCode,
			Body:         string(body),
			IPNotAllowed: ipRejected(resp.StatusCode, body),
		}
	}
	return env, nil
}

func ipRejected(status int, body []byte) bool {
	if status == http.StatusForbidden {
		return true
	}
	lower := strings.ToLower(string(body))
	return strings.Contains(lower, "whitelist") || strings.Contains(lower, "ip not allowed")
}
