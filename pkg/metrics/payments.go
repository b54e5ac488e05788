package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/festivault/festivault-backend/pkg/money"
)

// PaymentMetrics counts money movement through the wallet and the
// payments orchestrator.
type PaymentMetrics struct {
	payments *prometheus.CounterVec
	volume   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_total",
		Help: "Completed payment operations by kind.",
	}, []string{"kind"})
	volume := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_volume_dollars_total",
		Help: "Total dollars moved by completed payment operations.",
	}, []string{"kind"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_failures_total",
		Help: "Failed payment operations by kind.",
	}, []string{"kind"})
	reg.MustRegister(payments, volume, failures)
	return &PaymentMetrics{
		payments: payments,
		volume:   volume,
		failures: failures,
	}
}

// IncPayment records one completed payment of the given kind.
func (p *PaymentMetrics) IncPayment(kind string, amount money.Money) {
	if p == nil || p.payments == nil {
		return
	}
	p.payments.WithLabelValues(normalizeLabel(kind)).Inc()
	p.volume.WithLabelValues(normalizeLabel(kind)).Add(amount.Float64())
}

// IncFailure records one failed payment of the given kind.
func (p *PaymentMetrics) IncFailure(kind string) {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.WithLabelValues(normalizeLabel(kind)).Inc()
}
