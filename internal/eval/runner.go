package eval

import (
	"time"

	"github.com/rs/zerolog/log"
)

type cacheState uint8

const (
	cacheEmpty cacheState = iota
	cacheComputing
	cachePopulated
)

// FoldResult carries the ground truth and predicted scores of one test
// block. Scores are probabilities in [0,1] in classification mode and raw
// predicted values in regression mode.
type FoldResult struct {
	Fold   int
	Truth  []float64
	Scores []float64
}

// resultCache is the explicit computed-once state of a cross-validation run.
// It never invalidates itself: only Runner.Invalidate transitions it back to
// empty, and changes to the underlying classifier or data after a run are
// the caller's responsibility.
type resultCache struct {
	state cacheState
	folds []FoldResult
}

// Runner orchestrates the temporal splitter and the fold evaluator across
// all folds and exclusively owns the result cache. Aggregators borrow the
// cache read-only and trigger computation through Run rather than repeating
// the fit/predict loop.
type Runner struct {
	splits  []Split
	eval    *foldEvaluator
	cache   resultCache
	metrics MetricsSink
}

// NewRunner builds a runner for k folds over the dataset's ordered samples.
// The split layout is computed eagerly so an unusable fold count surfaces
// immediately.
func NewRunner(data Dataset, clf Classifier, folds int) (*Runner, error) {
	return NewRunnerWithMetrics(data, clf, folds, nil)
}

// NewRunnerWithMetrics is NewRunner with an instrumentation sink attached.
func NewRunnerWithMetrics(data Dataset, clf Classifier, folds int, metrics MetricsSink) (*Runner, error) {
	y, mode := data.Predictand()
	splits, err := TimeSeriesSplits(len(y), folds)
	if err != nil {
		return nil, err
	}
	return &Runner{
		splits:  splits,
		eval:    &foldEvaluator{clf: clf, x: data.TrainingCovariates(), y: y, mode: mode},
		metrics: metrics,
	}, nil
}

// Folds returns the configured fold count.
func (r *Runner) Folds() int { return len(r.splits) }

// Run returns the ordered fold results, computing them on first access.
// Once populated the cache is returned as-is; the classifier is not refit.
// After a failed run the cache keeps the folds completed before the failure
// and Run keeps returning ErrEvaluationInProgress until Invalidate is
// called.
func (r *Runner) Run() ([]FoldResult, error) {
	return r.run(nil)
}

// Invalidate clears the cache so the next access recomputes every fold.
func (r *Runner) Invalidate() {
	r.cache.state = cacheEmpty
	r.cache.folds = nil
}

// Results exposes the cached fold results without triggering computation.
// The slice is nil while the cache is empty.
func (r *Runner) Results() []FoldResult { return r.cache.folds }

// run processes folds strictly in increasing order. When observe is non-nil
// it sees each FoldResult before the result enters the cache, so an observer
// failure leaves the cache holding only the folds that preceded it. A
// populated cache is replayed to the observer without refitting.
func (r *Runner) run(observe func(FoldResult) error) ([]FoldResult, error) {
	switch r.cache.state {
	case cachePopulated:
		if r.metrics != nil {
			r.metrics.CacheHitsInc()
		}
		if observe != nil {
			for _, fr := range r.cache.folds {
				if err := observe(fr); err != nil {
					if r.metrics != nil {
						r.metrics.EvalFailuresInc()
					}
					return nil, err
				}
			}
		}
		return r.cache.folds, nil
	case cacheComputing:
		return nil, ErrEvaluationInProgress
	}

	r.cache.state = cacheComputing
	r.cache.folds = r.cache.folds[:0]
	start := time.Now()
	if r.metrics != nil {
		r.metrics.EvalRunsInc()
	}

	for i, sp := range r.splits {
		if err := r.evalFold(i, sp, observe); err != nil {
			if r.metrics != nil {
				r.metrics.EvalFailuresInc()
			}
			log.Error().Err(err).Int("fold", i).Msg("cross-validation aborted")
			return nil, err
		}
	}

	r.cache.state = cachePopulated
	log.Info().
		Int("folds", len(r.splits)).
		Str("mode", r.eval.mode.String()).
		Dur("elapsed", time.Since(start)).
		Msg("cross-validation complete")
	return r.cache.folds, nil
}

func (r *Runner) evalFold(fold int, sp Split, observe func(FoldResult) error) error {
	fitStart := time.Now()
	if err := r.eval.fit(fold, sp.Train); err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.FitDurationObserve(time.Since(fitStart).Seconds())
	}

	predStart := time.Now()
	scores, err := r.eval.predict(fold, sp.Test)
	if err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.PredictDurationObserve(time.Since(predStart).Seconds())
	}

	fr := FoldResult{Fold: fold, Truth: valuesAt(r.eval.y, sp.Test), Scores: scores}
	if observe != nil {
		if err := observe(fr); err != nil {
			return err
		}
	}
	r.cache.folds = append(r.cache.folds, fr)
	if r.metrics != nil {
		r.metrics.FoldsEvaluatedInc()
	}

	log.Debug().
		Int("fold", fold).
		Int("train_size", len(sp.Train)).
		Int("test_size", len(sp.Test)).
		Msg("fold evaluated")
	return nil
}
