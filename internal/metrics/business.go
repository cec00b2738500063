package metrics

// IncrementIdeaCreated increments the idea creation counter
func (m *Metrics) IncrementIdeaCreated() {
	m.safeExecute("IncrementIdeaCreated", func() {
		m.IdeaCreatedTotal.Inc()
	})
}

// RecordGenerationRun records the outcome of an idea generation run
func (m *Metrics) RecordGenerationRun(status string) {
	m.safeExecute("RecordGenerationRun", func() {
		m.GenerationRunsTotal.WithLabelValues(status).Inc()
	})
}

// AddCommentsConsumed adds to the consumed comments counter
func (m *Metrics) AddCommentsConsumed(count int) {
	m.safeExecute("AddCommentsConsumed", func() {
		m.CommentsConsumedTotal.Add(float64(count))
	})
}

// SetIdeasTotal sets the total ideas gauge
func (m *Metrics) SetIdeasTotal(count int64) {
	m.safeExecute("SetIdeasTotal", func() {
		m.IdeasTotal.Set(float64(count))
	})
}

// SetCommentsUnusedTotal sets the unused comments gauge
func (m *Metrics) SetCommentsUnusedTotal(count int64) {
	m.safeExecute("SetCommentsUnusedTotal", func() {
		m.CommentsUnusedTotal.Set(float64(count))
	})
}
