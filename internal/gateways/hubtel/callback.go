package hubtel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CallbackPayload is the body Hubtel posts to the callback URL.
// encoding/json matches keys case-insensitively, so both the documented
// PascalCase keys and camelCase variants decode into the same fields.
type CallbackPayload struct {
	ResponseCode string       `json:"ResponseCode"`
	Status       string       `json:"Status"`
	Data         CallbackData `json:"Data"`
}

type CallbackData struct {
	CheckoutID          string              `json:"CheckoutId"`
	SalesInvoiceID      string              `json:"SalesInvoiceId"`
	TransactionID       string              `json:"TransactionId"`
	ClientReference     string              `json:"ClientReference"`
	Status              string              `json:"Status"`
	Amount              decimal.NullDecimal `json:"Amount"`
	CustomerPhoneNumber string              `json:"CustomerPhoneNumber"`
	PaymentDetails      PaymentDetails      `json:"PaymentDetails"`
	Description         string              `json:"Description"`
}

type PaymentDetails struct {
	MobileMoneyNumber string `json:"MobileMoneyNumber"`
	PaymentType       string `json:"PaymentType"`
	Channel           string `json:"Channel"`
}

// ParseCallback decodes a callback body. It fails when the body is not JSON
// or carries no client reference.
func ParseCallback(raw []byte) (CallbackPayload, error) {
	var p CallbackPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return CallbackPayload{}, fmt.Errorf("decode callback: %w", err)
	}
	p.Data.ClientReference = strings.TrimSpace(p.Data.ClientReference)
	if p.Data.ClientReference == "" {
		return p, fmt.Errorf("callback has no clientReference")
	}
	return p, nil
}

// Succeeded is true only when the envelope and the transaction both report success.
func (p CallbackPayload) Succeeded() bool {
	return p.ResponseCode == successCode &&
		strings.EqualFold(p.Status, "Success") &&
		strings.EqualFold(p.Data.Status, "Success")
}

// Transaction returns the best available gateway transaction identifier.
func (p CallbackPayload) Transaction() string {
	for _, v := range []string{p.Data.TransactionID, p.Data.SalesInvoiceID, p.Data.CheckoutID} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
