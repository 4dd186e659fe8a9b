// Package metrics provides evaluation metrics for binary classifiers.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/toxiclf/pkg/errors"
)

// Accuracy returns the fraction of positions where yPred equals yTrue.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkVectors("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix is Accuracy for column-vector matrices. Only the first
// column of each argument is read.
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := firstColumns("AccuracyMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(t, p)
}

// BinaryLogLoss returns the mean cross-entropy between 0/1 labels and the
// predicted probabilities of class 1. Probabilities are clipped away from
// 0 and 1 before taking logs.
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkVectors("BinaryLogLoss", yTrue, yPred); err != nil {
		return 0, err
	}
	if err := checkBinary("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	var loss float64
	for i := 0; i < n; i++ {
		loss += logLossTerm(yTrue.AtVec(i), yPred.AtVec(i))
	}
	return loss / float64(n), nil
}

// logLossTerm is the cross-entropy contribution of one sample.
func logLossTerm(y, p float64) float64 {
	if y == 1 {
		return -errors.StabilizeLog(p)
	}
	return -errors.StabilizeLog(1 - p)
}

// MeanLogLoss is BinaryLogLoss over plain slices, without label checks.
// Estimators use it to record training loss.
func MeanLogLoss(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	var loss float64
	for i, y := range yTrue {
		loss += logLossTerm(y, yPred[i])
	}
	return loss / float64(len(yTrue))
}

// AUC computes the area under the ROC curve from 0/1 labels and scores.
// Tied scores count as half. When only one class is present the area is
// undefined and 0.5 is returned.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkVectors("AUC", yTrue, yPred); err != nil {
		return 0, err
	}
	if err := checkBinary("AUC", yTrue); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return yPred.AtVec(order[a]) < yPred.AtVec(order[b])
	})

	// Mann-Whitney U with average ranks for ties.
	var rankSumPos float64
	nPos := 0
	for i := 0; i < n; {
		j := i
		for j+1 < n && yPred.AtVec(order[j+1]) == yPred.AtVec(order[i]) {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue.AtVec(order[k]) == 1 {
				rankSumPos += avgRank
				nPos++
			}
		}
		i = j + 1
	}

	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		return 0.5, nil
	}
	u := rankSumPos - float64(nPos*(nPos+1))/2
	return u / float64(nPos*nNeg), nil
}

// AUCMatrix is AUC for matrices; only the first column of each is read.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := firstColumns("AUCMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return AUC(t, p)
}

func checkVectors(op string, yTrue, yPred *mat.VecDense) error {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 || yPred.Len() == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if yTrue.Len() != yPred.Len() {
		return errors.NewDimensionError(op, yTrue.Len(), yPred.Len(), 0)
	}
	return nil
}

func checkBinary(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValidationError("y_true", op+" requires binary labels (0 or 1)", v)
		}
	}
	return nil
}

func firstColumns(op string, a, b mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	if a == nil || b == nil {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra == 0 || ca == 0 || rb == 0 || cb == 0 {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ra != rb {
		return nil, nil, errors.NewDimensionError(op, ra, rb, 0)
	}
	return column(a), column(b), nil
}

func column(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
