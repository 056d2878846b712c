package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_RunCollectsFoldsInOrder(t *testing.T) {
	t.Parallel()

	data := separableData(60) // 5 folds: warm-up 10, test blocks of 10
	clf := &stubClassifier{score: identityScore}
	r, err := NewRunner(data, clf, 5)
	require.NoError(t, err)

	folds, err := r.Run()
	require.NoError(t, err)
	require.Len(t, folds, 5)

	assert.Equal(t, 5, clf.fitCalls)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, clf.trainSizes)

	for i, fr := range folds {
		assert.Equal(t, i, fr.Fold)
		require.Len(t, fr.Truth, 10)
		require.Len(t, fr.Scores, 10)
		for j, truth := range fr.Truth {
			idx := 10 + i*10 + j
			assert.Equal(t, data.y[idx], truth, "fold %d row %d", i, j)
			if truth > 0.5 {
				assert.Equal(t, 0.9, fr.Scores[j])
			} else {
				assert.Equal(t, 0.1, fr.Scores[j])
			}
		}
	}
}

func TestRunner_RunIsIdempotent(t *testing.T) {
	t.Parallel()

	clf := &stubClassifier{score: identityScore}
	r, err := NewRunner(separableData(60), clf, 5)
	require.NoError(t, err)

	first, err := r.Run()
	require.NoError(t, err)
	fitsAfterFirst := clf.fitCalls

	second, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, fitsAfterFirst, clf.fitCalls, "cached run must not refit")
	assert.Equal(t, first, second)
}

func TestRunner_InvalidateForcesRecompute(t *testing.T) {
	t.Parallel()

	clf := &stubClassifier{score: identityScore}
	r, err := NewRunner(separableData(60), clf, 5)
	require.NoError(t, err)

	_, err = r.Run()
	require.NoError(t, err)
	require.Equal(t, 5, clf.fitCalls)

	r.Invalidate()
	assert.Nil(t, r.Results())

	_, err = r.Run()
	require.NoError(t, err)
	assert.Equal(t, 10, clf.fitCalls)
}

func TestRunner_FitErrorLeavesPartialCache(t *testing.T) {
	t.Parallel()

	boom := errors.New("singular matrix")
	clf := &stubClassifier{score: identityScore, failFitOn: 3, fitErr: boom}
	r, err := NewRunner(separableData(60), clf, 5)
	require.NoError(t, err)

	_, err = r.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClassifierFit))
	assert.True(t, errors.Is(err, boom))

	var cerr *ClassifierError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 2, cerr.Fold)

	// folds 0 and 1 finished before the failure and stay cached
	assert.Len(t, r.Results(), 2)

	// the interrupted cache refuses further runs until invalidated
	_, err = r.Run()
	assert.True(t, errors.Is(err, ErrEvaluationInProgress))

	clf.failFitOn = 0
	r.Invalidate()
	folds, err := r.Run()
	require.NoError(t, err)
	assert.Len(t, folds, 5)
}

func TestRunner_PredictErrorWrapsFoldContext(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend offline")
	clf := &stubClassifier{score: identityScore, predictErr: boom}
	r, err := NewRunner(separableData(60), clf, 5)
	require.NoError(t, err)

	_, err = r.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClassifierPredict))
	assert.True(t, errors.Is(err, boom))
	assert.Empty(t, r.Results())
}

func TestRunner_RejectsProbabilityOutOfRange(t *testing.T) {
	t.Parallel()

	clf := &stubClassifier{score: constantScore(1.5)}
	r, err := NewRunner(separableData(60), clf, 5)
	require.NoError(t, err)

	_, err = r.Run()
	assert.True(t, errors.Is(err, ErrScoreOutOfRange))
}

func TestRunner_RegressionModeUsesRawValues(t *testing.T) {
	t.Parallel()

	// raw values well outside [0,1] are legitimate in regression mode
	data := &stubData{mode: Regression}
	for i := 0; i < 36; i++ {
		data.x = append(data.x, []float64{float64(i) * 3.5})
		data.y = append(data.y, float64(i)*3.5)
	}
	clf := &stubClassifier{score: identityScore}
	r, err := NewRunner(data, clf, 5)
	require.NoError(t, err)

	folds, err := r.Run()
	require.NoError(t, err)
	for _, fr := range folds {
		assert.Equal(t, fr.Truth, fr.Scores)
	}
}

func TestRunner_InvalidFoldCountSurfacesAtConstruction(t *testing.T) {
	t.Parallel()

	_, err := NewRunner(separableData(60), &stubClassifier{score: identityScore}, 1)
	assert.True(t, errors.Is(err, ErrInvalidFoldCount))

	_, err = NewRunner(separableData(4), &stubClassifier{score: identityScore}, 8)
	assert.True(t, errors.Is(err, ErrInvalidFoldCount))
}

func TestRunner_MetricsSink(t *testing.T) {
	t.Parallel()

	sink := &MockSink{}
	clf := &stubClassifier{score: identityScore}
	r, err := NewRunnerWithMetrics(separableData(60), clf, 5, sink)
	require.NoError(t, err)

	_, err = r.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, sink.runs)
	assert.Equal(t, 5, sink.folds)
	assert.Len(t, sink.fitDurations, 5)
	assert.Len(t, sink.predDurations, 5)
	assert.Zero(t, sink.cacheHits)

	_, err = r.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, sink.cacheHits)
	assert.Equal(t, 1, sink.runs, "cached run is not a new evaluation")
}
