package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordReconciliation(t *testing.T) {
	before := testutil.ToFloat64(reconciliations.WithLabelValues("callback", OutcomeTransitioned))
	RecordReconciliation("callback", OutcomeTransitioned)
	RecordReconciliation("callback", OutcomeTransitioned)
	assert.Equal(t, before+2, testutil.ToFloat64(reconciliations.WithLabelValues("callback", OutcomeTransitioned)))
}

func TestRecordEmailOutcome(t *testing.T) {
	okBefore := testutil.ToFloat64(emails.WithLabelValues("invoice", "sent"))
	failBefore := testutil.ToFloat64(emails.WithLabelValues("invoice", "failed"))

	RecordEmail("invoice", nil)
	RecordEmail("invoice", errors.New("smtp down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(emails.WithLabelValues("invoice", "sent")))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(emails.WithLabelValues("invoice", "failed")))
}

func TestObserveHTTPUnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	ObserveHTTP("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}
