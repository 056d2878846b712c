package eval

import "sync"

// MockSink implements MetricsSink for testing.
type MockSink struct {
	mu              sync.Mutex
	runs            int
	failures        int
	folds           int
	fitDurations    []float64
	predDurations   []float64
	foldAUCs        []float64
	degenerateFolds int
	cacheHits       int
	meanAUC         float64
}

func (m *MockSink) EvalRunsInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
}

func (m *MockSink) EvalFailuresInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *MockSink) FoldsEvaluatedInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folds++
}

func (m *MockSink) FitDurationObserve(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fitDurations = append(m.fitDurations, v)
}

func (m *MockSink) PredictDurationObserve(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predDurations = append(m.predDurations, v)
}

func (m *MockSink) FoldAUCObserve(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.foldAUCs = append(m.foldAUCs, v)
}

func (m *MockSink) DegenerateFoldsInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degenerateFolds++
}

func (m *MockSink) CacheHitsInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *MockSink) MeanAUCSet(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meanAUC = v
}
