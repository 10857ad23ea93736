package metrics

// IncrementSubmissionCreated increments the submission creation counter
func (m *Metrics) IncrementSubmissionCreated() {
	m.safeExecute("IncrementSubmissionCreated", func() {
		m.SubmissionsCreatedTotal.Inc()
	})
}

// IncrementReviewRecorded increments the review decision counter
func (m *Metrics) IncrementReviewRecorded(reviewType, decision string) {
	m.safeExecute("IncrementReviewRecorded", func() {
		m.ReviewsRecordedTotal.WithLabelValues(reviewType, decision).Inc()
	})
}

// IncrementCompensationDelete increments the compensating delete counter
func (m *Metrics) IncrementCompensationDelete() {
	m.safeExecute("IncrementCompensationDelete", func() {
		m.CompensationDeletesTotal.Inc()
	})
}

// IncrementCompensationFailure increments the failed compensation counter
func (m *Metrics) IncrementCompensationFailure() {
	m.safeExecute("IncrementCompensationFailure", func() {
		m.CompensationFailuresTotal.Inc()
	})
}

// IncrementOrphanReconciled increments the reconciled orphan counter
func (m *Metrics) IncrementOrphanReconciled() {
	m.safeExecute("IncrementOrphanReconciled", func() {
		m.OrphansReconciledTotal.Inc()
	})
}

// SetDrawingsTotal sets the total drawings gauge
func (m *Metrics) SetDrawingsTotal(count int64) {
	m.safeExecute("SetDrawingsTotal", func() {
		m.DrawingsTotal.Set(float64(count))
	})
}
