package eval

// Shared test doubles for the evaluation engine. The stub classifier scores
// rows with a fixed function so fold results are fully predictable, while
// still tracking fit/predict activity for cache assertions.

type stubData struct {
	x       [][]float64
	y       []float64
	mode    Mode
	prepErr error
}

func (d *stubData) TrainingCovariates() [][]float64 { return d.x }

func (d *stubData) Predictand() ([]float64, Mode) { return d.y, d.mode }

func (d *stubData) PrepareCovariates(raw [][]float64) ([][]float64, error) {
	if d.prepErr != nil {
		return nil, d.prepErr
	}
	return raw, nil
}

type stubClassifier struct {
	score      func(row []float64) float64
	fitCalls   int
	trainSizes []int
	failFitOn  int // 1-based fit call that returns fitErr
	fitErr     error
	predictErr error
}

func (c *stubClassifier) Fit(x [][]float64, y []float64) error {
	c.fitCalls++
	c.trainSizes = append(c.trainSizes, len(x))
	if c.failFitOn > 0 && c.fitCalls == c.failFitOn {
		return c.fitErr
	}
	return nil
}

func (c *stubClassifier) PredictProbability(x [][]float64) ([]float64, error) {
	return c.apply(x)
}

func (c *stubClassifier) Predict(x [][]float64) ([]float64, error) {
	return c.apply(x)
}

func (c *stubClassifier) apply(x [][]float64) ([]float64, error) {
	if c.predictErr != nil {
		return nil, c.predictErr
	}
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = c.score(row)
	}
	return out, nil
}

// separableData builds n alternating-label samples whose single feature
// perfectly separates the classes: positives carry 0.9, negatives 0.1.
func separableData(n int) *stubData {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			x[i] = []float64{0.9}
			y[i] = 1
		} else {
			x[i] = []float64{0.1}
			y[i] = 0
		}
	}
	return &stubData{x: x, y: y, mode: Classification}
}

// identityScore reads the prediction straight from the first feature.
func identityScore(row []float64) float64 { return row[0] }

func constantScore(v float64) func([]float64) float64 {
	return func([]float64) float64 { return v }
}
