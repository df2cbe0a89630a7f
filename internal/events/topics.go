package events

// Topic constants for the reconciliation domain.
const (
	TopicSearchCompleted         = "royalty.search.completed"
	TopicReconciliationCompleted = "royalty.reconciliation.completed"
	TopicReconciliationFailed    = "royalty.reconciliation.failed"
	TopicRatesUpdated            = "royalty.rates.updated"
	TopicRatesReset              = "royalty.rates.reset"
	TopicCommitFailed            = "royalty.commit.failed"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicSearchCompleted,
		TopicReconciliationCompleted,
		TopicReconciliationFailed,
		TopicRatesUpdated,
		TopicRatesReset,
		TopicCommitFailed,
	}
}
