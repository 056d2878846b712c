// Package eval evaluates a classifier against time-ordered observations with
// leakage-safe cross-validation. It produces per-fold ground-truth/prediction
// pairs, per-fold scalar metrics, and an averaged ROC curve with a
// variability band.
//
// The engine is strictly sequential: one classifier object is refit per fold
// and the result cache carries no internal locking, so a Predictor belongs to
// a single goroutine. The classifier, the data container and the rendering
// layer are external collaborators consumed through the interfaces below.
package eval

// Mode selects the prediction output of the classifier, fixed when the
// dataset is constructed: boolean predictands score positive-class
// probabilities, numeric predictands score raw values.
type Mode uint8

const (
	Classification Mode = iota
	Regression
)

func (m Mode) String() string {
	if m == Classification {
		return "classification"
	}
	return "regression"
}

// Dataset is the data collaborator. Labels arrive as float64 in both modes;
// classification labels are encoded 0/1. Samples are ordered by time and the
// engine never reshuffles them.
type Dataset interface {
	// TrainingCovariates returns the feature matrix, one row per sample.
	TrainingCovariates() [][]float64

	// Predictand returns the label vector and the prediction mode derived
	// from the label kind.
	Predictand() ([]float64, Mode)

	// PrepareCovariates turns raw out-of-sample rows into a feature matrix
	// compatible with the training covariates.
	PrepareCovariates(raw [][]float64) ([][]float64, error)
}

// Classifier is the model collaborator. Fit mutates the receiver in place;
// the engine refits the same instance for every fold.
type Classifier interface {
	Fit(x [][]float64, y []float64) error

	// PredictProbability returns the positive-class probability per row,
	// each in [0,1]. Used in classification mode.
	PredictProbability(x [][]float64) ([]float64, error)

	// Predict returns the raw predicted value per row. Used in regression
	// mode.
	Predict(x [][]float64) ([]float64, error)
}

// MetricsSink receives instrumentation events from the engine. All methods
// must be safe to call with a nil-checked sink; a nil sink disables
// instrumentation entirely.
type MetricsSink interface {
	EvalRunsInc()
	EvalFailuresInc()
	FoldsEvaluatedInc()
	FitDurationObserve(seconds float64)
	PredictDurationObserve(seconds float64)
	FoldAUCObserve(auc float64)
	DegenerateFoldsInc()
	CacheHitsInc()
	MeanAUCSet(auc float64)
}
