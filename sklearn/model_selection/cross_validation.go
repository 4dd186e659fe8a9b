package model_selection

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/toxiclf/core/model"
	"github.com/YuminosukeSato/toxiclf/metrics"
	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/pkg/log"
)

// EstimatorFactory builds a fresh, unfitted estimator for one fold.
type EstimatorFactory func() (model.ProbabilisticClassifier, error)

// CVResult stores cross-validation results, one entry per fold in fold order.
type CVResult struct {
	TestScores []float64 // Accuracy on the held-out rows
	TestAUC    []float64 // ROC AUC of P(class 1) on the held-out rows
	FitTimes   []float64 // Seconds spent in Fit
}

// GetMeanScore returns mean test score
func (cv *CVResult) GetMeanScore() float64 {
	if len(cv.TestScores) == 0 {
		return 0.0
	}
	return stat.Mean(cv.TestScores, nil)
}

// GetStdScore returns the sample standard deviation of test scores
func (cv *CVResult) GetStdScore() float64 {
	if len(cv.TestScores) <= 1 {
		return 0.0
	}
	_, std := stat.MeanStdDev(cv.TestScores, nil)
	return std
}

// GetMeanAUC returns mean test AUC
func (cv *CVResult) GetMeanAUC() float64 {
	if len(cv.TestAUC) == 0 {
		return 0.0
	}
	return stat.Mean(cv.TestAUC, nil)
}

// CrossValScore fits one estimator per fold and scores it on the held-out
// rows. At most nJobs folds run at once; nJobs <= 0 means one per CPU.
// Every fold gets its own estimator from factory, so estimators are never
// shared between goroutines.
//
// The first fold error cancels the remaining folds and is returned. A
// cancelled ctx stops folds that have not started yet.
func CrossValScore(ctx context.Context, factory EstimatorFactory, X, y mat.Matrix, splitter Splitter, nJobs int) (*CVResult, error) {
	if factory == nil {
		return nil, errors.NewValidationError("factory", "must not be nil", nil)
	}
	if splitter == nil {
		return nil, errors.NewValidationError("splitter", "must not be nil", nil)
	}

	folds, err := splitter.Split(X, y)
	if err != nil {
		return nil, err
	}
	if nJobs <= 0 {
		nJobs = runtime.NumCPU()
	}

	logger := log.GetLogger().With(log.OperationKey, log.OperationCrossValidate)
	logger.Info("Cross-validation started",
		"n_splits", len(folds),
		"n_jobs", nJobs,
	)

	result := &CVResult{
		TestScores: make([]float64, len(folds)),
		TestAUC:    make([]float64, len(folds)),
		FitTimes:   make([]float64, len(folds)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nJobs)
	for i, fold := range folds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr, err := runFold(factory, X, y, fold)
			if err != nil {
				logger.Error("Fold failed", err, log.FoldKey, i)
				return errors.Wrapf(err, "fold %d", i)
			}
			result.TestScores[i] = fr.score
			result.TestAUC[i] = fr.auc
			result.FitTimes[i] = fr.fitTime.Seconds()
			logger.Debug("Fold completed",
				log.FoldKey, i,
				log.AccuracyKey, fr.score,
				log.DurationMsKey, fr.fitTime.Milliseconds(),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Cross-validation completed",
		log.AccuracyKey, result.GetMeanScore(),
		"accuracy_std", result.GetStdScore(),
		"auc_mean", result.GetMeanAUC(),
	)
	return result, nil
}

type foldResult struct {
	score   float64
	auc     float64
	fitTime time.Duration
}

func runFold(factory EstimatorFactory, X, y mat.Matrix, fold CVFold) (res foldResult, err error) {
	defer errors.Recover(&err, "CrossValScore")

	est, err := factory()
	if err != nil {
		return foldResult{}, err
	}

	XTrain, yTrain := extractSubset(X, y, fold.TrainIndices)
	XTest, yTest := extractSubset(X, y, fold.TestIndices)

	start := time.Now()
	if err := est.Fit(XTrain, yTrain); err != nil {
		return foldResult{}, err
	}
	res.fitTime = time.Since(start)

	if res.score, err = est.Score(XTest, yTest); err != nil {
		return foldResult{}, err
	}

	proba, err := est.PredictProba(XTest)
	if err != nil {
		return foldResult{}, err
	}
	positive := mat.NewVecDense(len(fold.TestIndices), mat.Col(nil, 1, proba))
	if res.auc, err = metrics.AUCMatrix(yTest, positive); err != nil {
		return foldResult{}, err
	}
	return res, nil
}

// extractSubset copies the given rows of X and y into new matrices,
// keeping the order of indices.
func extractSubset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	xSubset := mat.NewDense(len(indices), xCols, nil)
	ySubset := mat.NewDense(len(indices), yCols, nil)
	for i, idx := range indices {
		for j := 0; j < xCols; j++ {
			xSubset.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySubset.Set(i, j, y.At(idx, j))
		}
	}
	return xSubset, ySubset
}
