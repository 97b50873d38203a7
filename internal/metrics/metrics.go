package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the directory service
type Metrics struct {
	DirectoriesResolved  *prometheus.CounterVec
	BanksListed          prometheus.Histogram
	SelectionValidations *prometheus.CounterVec
}

// New creates and registers all collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DirectoriesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_directory_resolutions_total",
			Help: "Total number of bank directories resolved, by payment product",
		}, []string{"product"}),
		BanksListed: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bank_directory_listed_banks",
			Help:    "Number of top-level banks returned by a directory resolution",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		SelectionValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_directory_selection_validations_total",
			Help: "Total number of bank selection validations, by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveResolution records a resolved directory of size banks. A nil
// Metrics records nothing.
func (m *Metrics) ObserveResolution(product string, size int) {
	if m == nil {
		return
	}
	m.DirectoriesResolved.WithLabelValues(product).Inc()
	m.BanksListed.Observe(float64(size))
}

// ObserveValidation records a validation outcome ("valid" or a failure reason)
func (m *Metrics) ObserveValidation(outcome string) {
	if m == nil {
		return
	}
	m.SelectionValidations.WithLabelValues(outcome).Inc()
}
