package eval

import (
	"fmt"
	"math"
	"sort"
)

// DefaultGridPoints is the size of the common false-positive-rate grid the
// per-fold curves are interpolated onto.
const DefaultGridPoints = 100

// ROCCurve is one fold's receiver operating characteristic: operating points
// swept across the decision thresholds of the fold's scores, plus the
// trapezoidal area under them. FPR and TPR are non-decreasing and start at
// (0, 0).
type ROCCurve struct {
	Fold int
	FPR  []float64
	TPR  []float64
	AUC  float64
}

// AggregatedROC summarizes the per-fold curves on a common grid. MeanTPR is
// pinned to 0 at the first grid point and 1 at the last; Upper and Lower are
// the ±1 std band clipped to [0,1]. StdAUC is the spread of the per-fold
// AUCs, not of the pinned mean curve.
type AggregatedROC struct {
	Grid    []float64
	MeanTPR []float64
	StdTPR  []float64
	Upper   []float64
	Lower   []float64
	MeanAUC float64
	StdAUC  float64
}

// ROCAggregator derives the averaged ROC summary from the cached
// cross-validation folds, triggering the runner when the cache is empty.
type ROCAggregator struct {
	runner     *Runner
	gridPoints int
}

func NewROCAggregator(r *Runner) *ROCAggregator {
	return &ROCAggregator{runner: r, gridPoints: DefaultGridPoints}
}

// Aggregate computes each fold's ROC curve, interpolates the true-positive
// rates onto an evenly spaced FPR grid, and returns the mean curve with its
// variability band alongside the raw per-fold curves.
//
// Pinning follows the reference behavior exactly: every fold's interpolated
// curve is forced to 0 at the leftmost grid point before averaging, and the
// averaged curve is forced to 1 at the rightmost grid point after. A fold
// whose truth holds a single class fails the whole aggregation with
// ErrDegenerateFold; on a cold cache the runner then retains only the folds
// that preceded it.
func (a *ROCAggregator) Aggregate() (AggregatedROC, []ROCCurve, error) {
	grid := linspace(0, 1, a.gridPoints)
	curves := make([]ROCCurve, 0, a.runner.Folds())
	interp := make([][]float64, 0, a.runner.Folds())

	_, err := a.runner.run(func(fr FoldResult) error {
		curve, err := rocCurve(fr.Fold, fr.Truth, fr.Scores)
		if err != nil {
			return err
		}
		tpr := make([]float64, len(grid))
		for i, g := range grid {
			tpr[i] = interpAt(g, curve.FPR, curve.TPR)
		}
		tpr[0] = 0.0
		curves = append(curves, curve)
		interp = append(interp, tpr)
		return nil
	})
	if err != nil {
		return AggregatedROC{}, nil, err
	}

	meanTPR := make([]float64, len(grid))
	stdTPR := make([]float64, len(grid))
	column := make([]float64, len(interp))
	for i := range grid {
		for j, tpr := range interp {
			column[j] = tpr[i]
		}
		meanTPR[i] = meanOf(column)
		stdTPR[i] = stdOf(column)
	}
	meanTPR[len(meanTPR)-1] = 1.0

	upper := make([]float64, len(grid))
	lower := make([]float64, len(grid))
	for i := range grid {
		upper[i] = math.Min(meanTPR[i]+stdTPR[i], 1)
		lower[i] = math.Max(meanTPR[i]-stdTPR[i], 0)
	}

	aucs := make([]float64, len(curves))
	for i, c := range curves {
		aucs[i] = c.AUC
	}

	agg := AggregatedROC{
		Grid:    grid,
		MeanTPR: meanTPR,
		StdTPR:  stdTPR,
		Upper:   upper,
		Lower:   lower,
		MeanAUC: trapezoid(grid, meanTPR),
		StdAUC:  stdOf(aucs),
	}
	return agg, curves, nil
}

// rocCurve sweeps the decision threshold across the fold's distinct scores,
// high to low, emitting one (FPR, TPR) operating point per threshold after
// the leading (0, 0).
func rocCurve(fold int, truth, scores []float64) (ROCCurve, error) {
	var pos, neg int
	for _, t := range truth {
		if t > 0.5 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return ROCCurve{}, fmt.Errorf("%w: fold %d test block holds a single class", ErrDegenerateFold, fold)
	}

	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]] > scores[idx[j]] })

	fpr := []float64{0}
	tpr := []float64{0}
	var tp, fp int
	for i := 0; i < len(idx); {
		// tied scores share one threshold and one operating point
		threshold := scores[idx[i]]
		for i < len(idx) && scores[idx[i]] == threshold {
			if truth[idx[i]] > 0.5 {
				tp++
			} else {
				fp++
			}
			i++
		}
		fpr = append(fpr, float64(fp)/float64(neg))
		tpr = append(tpr, float64(tp)/float64(pos))
	}

	return ROCCurve{Fold: fold, FPR: fpr, TPR: tpr, AUC: trapezoid(fpr, tpr)}, nil
}

// interpAt evaluates the piecewise-linear curve (xs, ys) at x, clamping to
// the endpoints outside the data range. xs is non-decreasing; where xs
// repeats, the last point wins, which rides the top of a vertical ROC
// segment.
func interpAt(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	j := sort.Search(n, func(k int) bool { return xs[k] > x })
	if xs[j-1] == x {
		return ys[j-1]
	}
	x0, x1 := xs[j-1], xs[j]
	y0, y1 := ys[j-1], ys[j]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func trapezoid(xs, ys []float64) float64 {
	var area float64
	for i := 1; i < len(xs); i++ {
		area += 0.5 * (ys[i] + ys[i-1]) * (xs[i] - xs[i-1])
	}
	return area
}

func meanOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// stdOf is the population standard deviation, matching the banding of the
// reference aggregation.
func stdOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := meanOf(v)
	var sumSq float64
	for _, x := range v {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(v)))
}
