package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGatewayRequest(t *testing.T) {
	before := testutil.ToFloat64(gatewayRequestsTotal.WithLabelValues("DELETESUBSCRIPTION", "none"))

	RecordGatewayRequest("DELETESUBSCRIPTION", "none", 120*time.Millisecond)

	after := testutil.ToFloat64(gatewayRequestsTotal.WithLabelValues("DELETESUBSCRIPTION", "none"))
	assert.Equal(t, before+1, after)
}

func TestRecordResponseHashFailure(t *testing.T) {
	before := testutil.ToFloat64(responseHashFailuresTotal.WithLabelValues("SUBSCRIPTIONPAYMENT"))

	RecordResponseHashFailure("SUBSCRIPTIONPAYMENT")

	assert.Equal(t, before+1, testutil.ToFloat64(responseHashFailuresTotal.WithLabelValues("SUBSCRIPTIONPAYMENT")))
}

func TestRecordSubscriptionPayment_OnlyApprovalsCountAmount(t *testing.T) {
	amount := subscriptionPaymentAmount.WithLabelValues("T-METRICS")
	before := testutil.ToFloat64(amount)

	RecordSubscriptionPayment("T-METRICS", "A", 10.5)
	RecordSubscriptionPayment("T-METRICS", "D", 99)

	assert.InDelta(t, before+10.5, testutil.ToFloat64(amount), 0.0001)
}

func TestMetricsHandler(t *testing.T) {
	RecordGatewayRequest("ADDSUBSCRIPTION", "none", time.Second)

	server := httptest.NewServer(NewMetricsHandler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "worldnet_requests_total")

	health, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
