package hubtel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quarhire/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(base string) Config {
	return Config{
		ClientID:              "client",
		ClientSecret:          "secret",
		MerchantAccountNumber: "HM123",
		CallbackURL:           "https://api.example.com/api/hubtel/callback",
		ReturnURL:             "https://example.com/payment/success",
		CancellationURL:       "https://example.com/payment/cancelled",
		CheckoutBaseURL:       base,
		StatusBaseURL:         base,
	}
}

func TestInitiateCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items/initiate", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client", user)
		assert.Equal(t, "secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 800.0, body["totalAmount"])
		assert.Equal(t, "HM123", body["merchantAccountNumber"])
		assert.Equal(t, "QH-20250301-ABC123", body["clientReference"])
		assert.Equal(t, "https://api.example.com/api/hubtel/callback", body["callbackUrl"])

		_, _ = w.Write([]byte(`{"responseCode":"0000","status":"Success","data":{"clientReference":"QH-20250301-ABC123","checkoutUrl":"https://pay.hubtel.com/abc","checkoutId":"abc","checkoutDirectUrl":"https://pay.hubtel.com/abc/direct"}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())
	out, err := c.InitiateCheckout(context.Background(), CheckoutRequest{
		TotalAmount:     decimal.NewFromInt(800),
		Description:     "Airport transfer",
		ClientReference: "QH-20250301-ABC123",
		PayeeName:       "Ama Mensah",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.hubtel.com/abc", out.CheckoutURL)
	assert.Equal(t, "abc", out.CheckoutID)
	assert.Equal(t, "https://pay.hubtel.com/abc/direct", out.CheckoutDirectURL)
}

func TestInitiateCheckoutNotConfigured(t *testing.T) {
	c := NewClient(Config{}, nil)
	_, err := c.InitiateCheckout(context.Background(), CheckoutRequest{})
	assert.True(t, domain.IsConfig(err))
}

func TestGetTransactionStatusPaid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/HM123/status", r.URL.Path)
		assert.Equal(t, "QH-1", r.URL.Query().Get("clientReference"))
		_, _ = w.Write([]byte(`{"message":"Successful","responseCode":"0000","data":{"date":"2025-03-01T10:00:00Z","status":"Paid","transactionId":"TX-9","externalTransactionId":"EXT-9","paymentMethod":"mobilemoney","clientReference":"QH-1","amount":800,"charges":8.5}}`))
	}))
	defer srv.Close()

	st, err := NewClient(testConfig(srv.URL), srv.Client()).GetTransactionStatus(context.Background(), "QH-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, st.Status)
	assert.Equal(t, "TX-9", st.TransactionID)
	assert.Equal(t, "EXT-9", st.ExternalTransactionID)
	assert.True(t, st.Amount.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, "8.5", st.Charges.String())
}

func TestGetTransactionStatusForbiddenFlagsIPAllowlist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Forbidden"}`))
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL), srv.Client()).GetTransactionStatus(context.Background(), "QH-1")
	require.Error(t, err)
	up, ok := domain.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, up.StatusCode)
	assert.True(t, up.IPNotAllowed)
	assert.NotEmpty(t, up.Hint())
	assert.Contains(t, up.Body, "Forbidden")
}

func TestGetTransactionStatusNonSuccessCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Not found","responseCode":"4000","data":null}`))
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL), srv.Client()).GetTransactionStatus(context.Background(), "QH-1")
	up, ok := domain.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, "4000", up.ResponseCode)
	assert.False(t, up.IPNotAllowed)
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]PaymentStatus{
		"Paid":     StatusPaid,
		" success": StatusPaid,
		"Unpaid":   StatusUnpaid,
		"Refunded": StatusRefunded,
		"weird":    StatusUnknown,
		"":         StatusUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), in)
	}
}

func TestParseCallbackAcceptsBothKeyStyles(t *testing.T) {
	pascal := []byte(`{"ResponseCode":"0000","Status":"Success","Data":{"CheckoutId":"chk","SalesInvoiceId":"inv","ClientReference":"QH-1","Status":"Success","Amount":800,"CustomerPhoneNumber":"233241234567","PaymentDetails":{"MobileMoneyNumber":"233241234567","PaymentType":"mobilemoney","Channel":"mtn-gh"},"Description":"ok"}}`)
	camel := []byte(`{"responseCode":"0000","status":"Success","data":{"checkoutId":"chk","salesInvoiceId":"inv","clientReference":"QH-1","status":"Success","amount":800}}`)

	for _, raw := range [][]byte{pascal, camel} {
		p, err := ParseCallback(raw)
		require.NoError(t, err)
		assert.True(t, p.Succeeded())
		assert.Equal(t, "QH-1", p.Data.ClientReference)
		assert.Equal(t, "inv", p.Transaction())
		require.True(t, p.Data.Amount.Valid)
		assert.True(t, p.Data.Amount.Decimal.Equal(decimal.NewFromInt(800)))
	}
}

func TestParseCallbackRejects(t *testing.T) {
	_, err := ParseCallback([]byte(`{not json`))
	assert.Error(t, err)

	_, err = ParseCallback([]byte(`{"ResponseCode":"0000","Data":{"Status":"Success"}}`))
	assert.Error(t, err)
}

func TestCallbackFailedStatus(t *testing.T) {
	p, err := ParseCallback([]byte(`{"ResponseCode":"2001","Status":"Failed","Data":{"ClientReference":"QH-1","Status":"Failed"}}`))
	require.NoError(t, err)
	assert.False(t, p.Succeeded())
}
