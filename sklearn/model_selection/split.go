// Package model_selection provides k-fold splitting and cross-validation.
package model_selection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/toxiclf/pkg/errors"
)

// CVFold holds the row indices of one train/test partition.
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// Splitter produces cross-validation folds for a table and its labels.
type Splitter interface {
	Split(X, y mat.Matrix) ([]CVFold, error)
	GetNSplits() int
}

// KFold splits samples into NSplits consecutive folds, optionally after a
// seeded shuffle.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewKFold creates a k-fold splitter.
func NewKFold(nSplits int, shuffle bool, randomSeed uint64) *KFold {
	return &KFold{NSplits: nSplits, Shuffle: shuffle, RandomSeed: randomSeed}
}

// GetNSplits returns the number of splits
func (kf *KFold) GetNSplits() int {
	return kf.NSplits
}

// Split returns NSplits folds. The first nSamples % NSplits folds get one
// extra test sample. Train indices are in ascending order.
func (kf *KFold) Split(X, y mat.Matrix) ([]CVFold, error) {
	nSamples, err := checkSplit(kf.NSplits, X, y)
	if err != nil {
		return nil, err
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		shuffle(indices, kf.RandomSeed)
	}

	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	folds := make([]CVFold, kf.NSplits)
	current := 0
	for i := range folds {
		testSize := foldSize
		if i < remainder {
			testSize++
		}
		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])
		folds[i] = CVFold{
			TrainIndices: complement(nSamples, test),
			TestIndices:  test,
		}
		current += testSize
	}
	return folds, nil
}

// StratifiedKFold splits samples so that every fold keeps roughly the
// class proportions of y.
type StratifiedKFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(nSplits int, shuffle bool, randomSeed uint64) *StratifiedKFold {
	return &StratifiedKFold{NSplits: nSplits, Shuffle: shuffle, RandomSeed: randomSeed}
}

// GetNSplits returns the number of splits
func (skf *StratifiedKFold) GetNSplits() int {
	return skf.NSplits
}

// Split deals the samples of each class round-robin across the folds,
// starting each class where the previous one stopped so fold sizes stay
// within one of each other.
func (skf *StratifiedKFold) Split(X, y mat.Matrix) ([]CVFold, error) {
	nSamples, err := checkSplit(skf.NSplits, X, y)
	if err != nil {
		return nil, err
	}

	// Classes are visited in order of first appearance.
	var order []float64
	byClass := make(map[float64][]int)
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		if _, seen := byClass[label]; !seen {
			order = append(order, label)
		}
		byClass[label] = append(byClass[label], i)
	}

	folds := make([]CVFold, skf.NSplits)
	next := 0
	for _, label := range order {
		indices := byClass[label]
		if skf.Shuffle {
			shuffle(indices, skf.RandomSeed)
		}
		for _, idx := range indices {
			folds[next].TestIndices = append(folds[next].TestIndices, idx)
			next = (next + 1) % skf.NSplits
		}
	}

	for i := range folds {
		folds[i].TrainIndices = complement(nSamples, folds[i].TestIndices)
	}
	return folds, nil
}

func checkSplit(nSplits int, X, y mat.Matrix) (int, error) {
	if nSplits < 2 {
		return 0, errors.NewValidationError("n_splits", "must be at least 2", nSplits)
	}
	if X == nil {
		return 0, errors.NewModelError("Split", "empty data", errors.ErrEmptyData)
	}
	nSamples, _ := X.Dims()
	if nSamples == 0 {
		return 0, errors.NewModelError("Split", "empty data", errors.ErrEmptyData)
	}
	if y == nil {
		return 0, errors.NewDimensionError("Split", nSamples, 0, 0)
	}
	if yRows, _ := y.Dims(); yRows != nSamples {
		return 0, errors.NewDimensionError("Split", nSamples, yRows, 0)
	}
	if nSplits > nSamples {
		return 0, errors.NewValidationError("n_splits", "cannot exceed the number of samples", nSplits)
	}
	return nSamples, nil
}

func shuffle(indices []int, seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
}

// complement returns the ascending indices in [0, n) not present in test.
func complement(n int, test []int) []int {
	inTest := make([]bool, n)
	for _, idx := range test {
		inTest[idx] = true
	}
	train := make([]int, 0, n-len(test))
	for i := 0; i < n; i++ {
		if !inTest[i] {
			train = append(train, i)
		}
	}
	return train
}
