package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// DomainMetrics counts purchase, refund and login outcomes.
type DomainMetrics struct {
	purchases *prometheus.CounterVec
	revenue   prometheus.Counter
	refunds   *prometheus.CounterVec
	logins    *prometheus.CounterVec
}

// NewDomainMetrics registers the domain counters on the provided registerer.
func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		return &DomainMetrics{}
	}
	purchases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ssbcompass_purchases_total",
		Help: "Purchase recording attempts by result.",
	}, []string{"result"})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ssbcompass_purchase_revenue_total",
		Help: "Sum of recorded purchase amounts in the smallest currency unit.",
	})
	refunds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ssbcompass_refunds_total",
		Help: "Refund requests by result.",
	}, []string{"result"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ssbcompass_logins_total",
		Help: "Login attempts by principal kind and result.",
	}, []string{"kind", "result"})
	reg.MustRegister(purchases, revenue, refunds, logins)
	return &DomainMetrics{
		purchases: purchases,
		revenue:   revenue,
		refunds:   refunds,
		logins:    logins,
	}
}

// PurchaseRecorded counts a purchase attempt and, on success, its amount.
func (m *DomainMetrics) PurchaseRecorded(amount int64, err error) {
	if m == nil || m.purchases == nil {
		return
	}
	if err != nil {
		m.purchases.WithLabelValues(ResultFailure).Inc()
		return
	}
	m.purchases.WithLabelValues(ResultSuccess).Inc()
	m.revenue.Add(float64(amount))
}

// RefundRequested counts a refund attempt.
func (m *DomainMetrics) RefundRequested(err error) {
	if m == nil || m.refunds == nil {
		return
	}
	m.refunds.WithLabelValues(resultLabel(err)).Inc()
}

// LoginAttempted counts a login attempt for the principal kind.
func (m *DomainMetrics) LoginAttempted(kind string, err error) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(kind), resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
