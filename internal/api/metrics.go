package api

import "github.com/prometheus/client_golang/prometheus"

// metrics are the loyalty-specific counters. A nil *metrics records nothing.
type metrics struct {
	logins *prometheus.CounterVec
	syncs  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, s Store) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kenzie_logins_total",
			Help: "Customer logins by result (found, created, not_found, invalid).",
		}, []string{"result"}),
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kenzie_syncs_total",
			Help: "Admin syncs by result (ok, unauthorized, invalid).",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.logins,
		m.syncs,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "kenzie_customers",
			Help: "Customers currently held in memory.",
		}, func() float64 {
			n, _ := s.Counts()
			return float64(n)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "kenzie_orders",
			Help: "Orders currently held in memory.",
		}, func() float64 {
			_, n := s.Counts()
			return float64(n)
		}),
	)
	return m
}

func (m *metrics) login(result string) {
	if m != nil {
		m.logins.WithLabelValues(result).Inc()
	}
}

func (m *metrics) sync(result string) {
	if m != nil {
		m.syncs.WithLabelValues(result).Inc()
	}
}
