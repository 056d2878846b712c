package eval

import (
	"errors"
	"fmt"
	"math"
)

// MetricFunc scores one fold's predictions against its ground truth.
type MetricFunc func(truth, scores []float64) (float64, error)

// MetricAggregator applies scalar metrics to the cached cross-validation
// folds. It borrows the runner's cache and triggers computation when empty.
type MetricAggregator struct {
	runner *Runner
}

func NewMetricAggregator(r *Runner) *MetricAggregator {
	return &MetricAggregator{runner: r}
}

// Score returns one value per fold, in fold order. Metric errors abort the
// aggregation and propagate with fold context; composing mean/std across the
// returned scores is left to the caller.
func (a *MetricAggregator) Score(metric MetricFunc) ([]float64, error) {
	folds, err := a.runner.Run()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(folds))
	for i, fr := range folds {
		v, err := metric(fr.Truth, fr.Scores)
		if err != nil {
			return nil, fmt.Errorf("metric on fold %d: %w", fr.Fold, err)
		}
		out[i] = v
	}
	return out, nil
}

var errLengthMismatch = errors.New("truth and score lengths differ")

// Accuracy is the fraction of scores on the correct side of 0.5.
func Accuracy(truth, scores []float64) (float64, error) {
	if len(truth) != len(scores) {
		return 0, errLengthMismatch
	}
	if len(truth) == 0 {
		return 0, errors.New("empty fold")
	}
	correct := 0
	for i, t := range truth {
		if (scores[i] > 0.5) == (t > 0.5) {
			correct++
		}
	}
	return float64(correct) / float64(len(truth)), nil
}

// MeanSquaredError is the mean squared residual. For classification scores
// against 0/1 truth this is the Brier score.
func MeanSquaredError(truth, scores []float64) (float64, error) {
	if len(truth) != len(scores) {
		return 0, errLengthMismatch
	}
	if len(truth) == 0 {
		return 0, errors.New("empty fold")
	}
	var sum float64
	for i, t := range truth {
		d := scores[i] - t
		sum += d * d
	}
	return sum / float64(len(truth)), nil
}

// Brier is MeanSquaredError under its classification name.
var Brier MetricFunc = MeanSquaredError

// LogLoss is the mean negative log-likelihood of 0/1 truth under the
// predicted probabilities. Probabilities are clamped away from 0 and 1 to
// keep the loss finite.
func LogLoss(truth, scores []float64) (float64, error) {
	if len(truth) != len(scores) {
		return 0, errLengthMismatch
	}
	if len(truth) == 0 {
		return 0, errors.New("empty fold")
	}
	const eps = 1e-15
	var sum float64
	for i, t := range truth {
		p := math.Min(math.Max(scores[i], eps), 1-eps)
		if t > 0.5 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(len(truth)), nil
}
