package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// SearchTotal counts book search outcomes.
	SearchTotal *prometheus.CounterVec
	// ReconciliationTotal counts reconciliation runs by outcome.
	ReconciliationTotal *prometheus.CounterVec
	// CommitTotal counts commit operations by action (update/reset) and outcome.
	CommitTotal *prometheus.CounterVec
	// DiscrepancyTotal counts discrepancies surfaced per royalty head.
	DiscrepancyTotal *prometheus.CounterVec
	// UpstreamRequestTotal counts calls to the three external endpoints.
	UpstreamRequestTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers the reconciliation
// domain collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		SearchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_total",
			Help:      "Count of book search outcomes.",
		}, []string{"result"})
		ReconciliationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_total",
			Help:      "Count of reconciliation runs by outcome.",
		}, []string{"result"})
		CommitTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commit_total",
			Help:      "Count of rate commit operations by action and outcome.",
		}, []string{"action", "result"})
		DiscrepancyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discrepancies_total",
			Help:      "Count of discrepancies surfaced per royalty head.",
		}, []string{"head"})
		UpstreamRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Count of upstream endpoint calls by outcome.",
		}, []string{"endpoint", "result"})

		for _, c := range []**prometheus.CounterVec{
			&SearchTotal, &ReconciliationTotal, &CommitTotal, &DiscrepancyTotal, &UpstreamRequestTotal,
		} {
			mustRegisterCollector(reg, c)
		}
	})
}

// ObserveSearch records a search outcome. Safe before registration.
func ObserveSearch(result string) {
	if SearchTotal != nil {
		SearchTotal.WithLabelValues(result).Inc()
	}
}

// ObserveReconciliation records a reconciliation outcome.
func ObserveReconciliation(result string) {
	if ReconciliationTotal != nil {
		ReconciliationTotal.WithLabelValues(result).Inc()
	}
}

// ObserveCommit records a commit outcome for the given action.
func ObserveCommit(action, result string) {
	if CommitTotal != nil {
		CommitTotal.WithLabelValues(action, result).Inc()
	}
}

// ObserveDiscrepancy records one surfaced discrepancy for a head.
func ObserveDiscrepancy(head string) {
	if DiscrepancyTotal != nil {
		DiscrepancyTotal.WithLabelValues(head).Inc()
	}
}

// ObserveUpstream records an upstream endpoint call outcome.
func ObserveUpstream(endpoint, result string) {
	if UpstreamRequestTotal != nil {
		UpstreamRequestTotal.WithLabelValues(endpoint, result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, counter **prometheus.CounterVec) {
	if err := reg.Register(*counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				*counter = existing
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
