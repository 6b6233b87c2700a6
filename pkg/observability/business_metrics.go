package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Subscription payment metrics
	subscriptionPaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldnet_subscription_payments_total",
		Help: "Verified subscription payment replies by gateway response code",
	}, []string{
		"response_code", // A=approved, D=declined, R=referral
	})

	subscriptionPaymentAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldnet_subscription_payment_amount_total",
		Help: "Sum of approved subscription payment amounts (major units)",
	}, []string{
		"terminal_id",
	})
)

// RecordSubscriptionPayment records a verified payment reply.
// Only approvals count toward the amount total.
func RecordSubscriptionPayment(terminalID, responseCode string, amount float64) {
	subscriptionPaymentsTotal.WithLabelValues(responseCode).Inc()

	if responseCode == "A" && amount > 0 {
		subscriptionPaymentAmount.WithLabelValues(terminalID).Add(amount)
	}
}
