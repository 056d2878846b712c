package metrics

// Wrapper adapts Metrics to the evaluation engine's sink interface without
// the engine importing this package.
type Wrapper struct {
	m *Metrics
}

func NewWrapper(m *Metrics) *Wrapper {
	return &Wrapper{m: m}
}

func (w *Wrapper) EvalRunsInc()     { w.m.EvalRuns.Inc() }
func (w *Wrapper) EvalFailuresInc() { w.m.EvalFailures.Inc() }

func (w *Wrapper) FoldsEvaluatedInc()  { w.m.FoldsEvaluated.Inc() }
func (w *Wrapper) DegenerateFoldsInc() { w.m.DegenerateFolds.Inc() }
func (w *Wrapper) CacheHitsInc()       { w.m.CacheHits.Inc() }

func (w *Wrapper) FitDurationObserve(seconds float64) {
	w.m.FitDuration.Observe(seconds)
}

func (w *Wrapper) PredictDurationObserve(seconds float64) {
	w.m.PredictDuration.Observe(seconds)
}

func (w *Wrapper) FoldAUCObserve(auc float64) {
	w.m.FoldAUC.Observe(auc)
}

func (w *Wrapper) MeanAUCSet(auc float64) {
	w.m.MeanAUC.Set(auc)
}
