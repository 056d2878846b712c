package eval

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Predictor ties one classifier to one ordered dataset and exposes the full
// evaluation surface: in-sample scoring and residuals, out-of-sample
// prediction, and the cached cross-validation pipeline behind the metric and
// ROC aggregators.
//
// A Predictor is a single-owner object. The classifier is one mutable
// resource refit sequentially per fold, so concurrent use requires an
// independent classifier and an independent Predictor per goroutine.
type Predictor struct {
	data       Dataset
	clf        Classifier
	x          [][]float64
	y          []float64
	mode       Mode
	runner     *Runner
	metricAgg  *MetricAggregator
	rocAgg     *ROCAggregator
	metrics    MetricsSink
	gridPoints int
}

// Option configures a Predictor at construction.
type Option func(*Predictor)

// WithMetrics attaches an instrumentation sink.
func WithMetrics(m MetricsSink) Option {
	return func(p *Predictor) { p.metrics = m }
}

// WithGridPoints overrides the ROC interpolation grid size.
func WithGridPoints(n int) Option {
	return func(p *Predictor) { p.gridPoints = n }
}

// New builds a Predictor for k-fold evaluation. Covariates, predictand and
// mode are captured once; an unusable fold count fails here rather than on
// first use.
func New(data Dataset, clf Classifier, folds int, opts ...Option) (*Predictor, error) {
	y, mode := data.Predictand()
	p := &Predictor{
		data:       data,
		clf:        clf,
		x:          data.TrainingCovariates(),
		y:          y,
		mode:       mode,
		gridPoints: DefaultGridPoints,
	}
	for _, opt := range opts {
		opt(p)
	}
	if len(p.x) != len(p.y) {
		return nil, fmt.Errorf("dataset has %d covariate rows for %d labels", len(p.x), len(p.y))
	}
	if p.gridPoints < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points, got %d", p.gridPoints)
	}

	runner, err := NewRunnerWithMetrics(data, clf, folds, p.metrics)
	if err != nil {
		return nil, err
	}
	p.runner = runner
	p.metricAgg = NewMetricAggregator(runner)
	p.rocAgg = &ROCAggregator{runner: runner, gridPoints: p.gridPoints}

	log.Debug().
		Int("samples", len(p.y)).
		Int("folds", folds).
		Str("mode", p.mode.String()).
		Msg("predictor ready")
	return p, nil
}

// Mode reports whether the predictor scores probabilities or raw values.
func (p *Predictor) Mode() Mode { return p.mode }

// FitFull trains the classifier on every sample, the full-history
// counterpart of the per-fold fits. It shares the classifier instance with
// cross-validation, so interleaving the two overwrites state; run it after
// the evaluation pipeline, or Invalidate first.
func (p *Predictor) FitFull() error {
	if err := p.clf.Fit(p.x, p.y); err != nil {
		return &ClassifierError{Op: "fit", Fold: -1, Err: err}
	}
	return nil
}

// Scores returns the classifier's in-sample output for the selected rows;
// nil selects every row. The classifier must have been fit.
func (p *Predictor) Scores(idxs []int) ([]float64, error) {
	scores, err := scoreRows(p.clf, p.mode, rowsAt(p.x, idxs))
	if err != nil {
		return nil, &ClassifierError{Op: "predict", Fold: -1, Err: err}
	}
	return scores, nil
}

// Residuals returns score minus label for the selected rows; nil selects
// every row.
func (p *Predictor) Residuals(idxs []int) ([]float64, error) {
	scores, err := p.Scores(idxs)
	if err != nil {
		return nil, err
	}
	labels := valuesAt(p.y, idxs)
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = s - labels[i]
	}
	return out, nil
}

// PredictNew scores out-of-sample records: raw rows go through the dataset's
// covariate preparation, then through the fitted classifier.
func (p *Predictor) PredictNew(raw [][]float64) ([]float64, error) {
	x, err := p.data.PrepareCovariates(raw)
	if err != nil {
		return nil, fmt.Errorf("prepare covariates: %w", err)
	}
	scores, err := scoreRows(p.clf, p.mode, x)
	if err != nil {
		return nil, &ClassifierError{Op: "predict", Fold: -1, Err: err}
	}
	return scores, nil
}

// CrossValidate returns the ordered per-fold (truth, scores) pairs, running
// the fold loop on first access and the cache afterwards.
func (p *Predictor) CrossValidate() ([]FoldResult, error) {
	return p.runner.Run()
}

// CrossValMetric applies metric to each cached fold and returns one score
// per fold in fold order.
func (p *Predictor) CrossValMetric(metric MetricFunc) ([]float64, error) {
	return p.metricAgg.Score(metric)
}

// AggregateROC returns the mean ROC curve with its variability band plus the
// raw per-fold curves for individual rendering.
func (p *Predictor) AggregateROC() (AggregatedROC, []ROCCurve, error) {
	agg, curves, err := p.rocAgg.Aggregate()
	if err != nil {
		if p.metrics != nil && errors.Is(err, ErrDegenerateFold) {
			p.metrics.DegenerateFoldsInc()
		}
		return AggregatedROC{}, nil, err
	}
	if p.metrics != nil {
		for _, c := range curves {
			p.metrics.FoldAUCObserve(c.AUC)
		}
		p.metrics.MeanAUCSet(agg.MeanAUC)
	}
	log.Info().
		Float64("mean_auc", agg.MeanAUC).
		Float64("std_auc", agg.StdAUC).
		Int("folds", len(curves)).
		Msg("ROC aggregation complete")
	return agg, curves, nil
}

// Invalidate clears the cross-validation cache so the next access refits
// every fold.
func (p *Predictor) Invalidate() {
	p.runner.Invalidate()
}
