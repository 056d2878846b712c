package eval

import "fmt"

// Split pairs the train and test indices of one cross-validation fold. Both
// sequences are ordered ascending; every train index precedes every test
// index, so no fold ever trains on its own future.
type Split struct {
	Train []int
	Test  []int
}

// TimeSeriesSplits partitions n ordered samples into k forward-looking
// splits. Each test block has size n/(k+1); the division remainder is
// absorbed into the warm-up before the first test block, so the k test
// blocks are contiguous, disjoint and exactly cover the tail of the index
// range. Each training set is every index strictly before its test block.
// Output is deterministic for fixed (n, k).
func TimeSeriesSplits(n, k int) ([]Split, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: got %d folds, need at least 2", ErrInvalidFoldCount, k)
	}
	testSize := n / (k + 1)
	if testSize < 1 {
		return nil, fmt.Errorf("%w: %d samples cannot fill %d non-empty test blocks", ErrInvalidFoldCount, n, k)
	}

	warmup := n - k*testSize
	splits := make([]Split, k)
	for i := 0; i < k; i++ {
		testStart := warmup + i*testSize
		train := make([]int, testStart)
		for j := range train {
			train[j] = j
		}
		test := make([]int, testSize)
		for j := range test {
			test[j] = testStart + j
		}
		splits[i] = Split{Train: train, Test: test}
	}
	return splits, nil
}
