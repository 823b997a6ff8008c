package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"quarhire/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWithoutKeyFailsClosed(t *testing.T) {
	m := NewResendMailer(" ", "Quarhire <bookings@quarhire.com>")
	assert.False(t, m.Configured())

	_, err := m.Send(context.Background(), Message{To: []string{"a@example.com"}})
	assert.True(t, domain.IsConfig(err))
}

func TestSendPostsToResend(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_test", "Quarhire <bookings@quarhire.com>")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	m.client.BaseURL = base

	id, err := m.Send(context.Background(), Message{
		To:          []string{"ama@example.com"},
		ReplyTo:     "ops@quarhire.com",
		Subject:     "Payment received",
		HTML:        "<p>ok</p>",
		Attachments: []Attachment{{Filename: "INVOICE.pdf", Content: []byte("%PDF-1.3")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "email-123", id)
	assert.Equal(t, "Payment received", got["subject"])
	assert.Equal(t, []any{"ama@example.com"}, got["to"])
}

func TestSendWrapsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_test", "bad")
	base, _ := url.Parse(srv.URL + "/")
	m.client.BaseURL = base

	_, err := m.Send(context.Background(), Message{To: []string{"ama@example.com"}, Subject: "x"})
	up, ok := domain.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, "email", up.Service)
}
