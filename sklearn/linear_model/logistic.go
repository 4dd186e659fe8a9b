// Package linear_model implements linear classifiers.
package linear_model

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/toxiclf/core/model"
	"github.com/YuminosukeSato/toxiclf/metrics"
	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/pkg/log"
)

const (
	// DefaultLearningRate is the step size used when none is given.
	DefaultLearningRate = 0.01
	// DefaultMaxIter is the number of gradient steps used when none is given.
	DefaultMaxIter = 1000
	// DecisionThreshold is the positive-class probability at or above which
	// Predict returns 1.
	DecisionThreshold = 0.5

	// sigmoidClip bounds the linear score before exponentiation so exp
	// never overflows.
	sigmoidClip = 500.0
	// probEpsilon keeps probabilities inside the open interval (0, 1).
	probEpsilon = 1e-15

	modelName = "LogisticRegression"
)

// LogisticRegression is a binary classifier trained by full-batch gradient
// descent on the log-loss.
//
// Training is deterministic: parameters start at zero and exactly maxIter
// update steps are taken over all samples in row order. A LogisticRegression
// is not safe for concurrent use; distinct instances share no state.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters, fixed at construction
	learningRate float64
	maxIter      int
	logger       log.Logger

	// Model parameters
	coef_      []float64 // Weights (n_features)
	intercept_ float64   // Bias
	nIter_     int       // Update steps taken by the last Fit
	lossCurve_ []float64 // Mean log-loss at the start of every iteration
}

// NewLogisticRegression creates an untrained classifier. It fails with a
// *errors.ValidationError when the learning rate is not a positive finite
// number or the iteration count is negative.
func NewLogisticRegression(opts ...Option) (*LogisticRegression, error) {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		learningRate: DefaultLearningRate,
		maxIter:      DefaultMaxIter,
	}

	for _, opt := range opts {
		opt(lr)
	}

	if err := ValidateParams(lr.learningRate, lr.maxIter); err != nil {
		return nil, err
	}
	return lr, nil
}

// ValidateParams checks a learning rate and iteration count.
func ValidateParams(learningRate float64, maxIter int) error {
	if math.IsNaN(learningRate) || math.IsInf(learningRate, 0) || learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", learningRate)
	}
	if maxIter < 0 {
		return errors.NewValidationError("max_iter", "must be non-negative", maxIter)
	}
	return nil
}

// Sigmoid computes 1 / (1 + exp(-z)). The input is clamped to [-500, 500]
// and the result to [1e-15, 1-1e-15], so extreme scores saturate instead of
// overflowing. NaN is treated as a zero score.
func Sigmoid(z float64) float64 {
	if math.IsNaN(z) {
		return 0.5
	}
	z = errors.ClipValue(z, -sigmoidClip, sigmoidClip)
	return errors.ClipValue(1.0/(1.0+math.Exp(-z)), probEpsilon, 1-probEpsilon)
}

// Fit trains the classifier on X (n×m) and y (n×1, values 0 or 1).
//
// Every call starts from zero weights and replaces any previously learned
// parameters. If Fit fails the previous parameters are kept.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	const op = "LogisticRegression.Fit"

	rows, err := tableRows(op, X)
	if err != nil {
		return err
	}
	nSamples, nFeatures := len(rows), len(rows[0])

	labels, err := binaryLabels(op, y, nSamples)
	if err != nil {
		return err
	}

	logger := lr.getLogger()
	logger.Debug("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.LearningRateKey, lr.learningRate,
		log.MaxIterKey, lr.maxIter,
	)
	start := time.Now()

	coef := make([]float64, nFeatures)
	intercept := 0.0
	predictions := make([]float64, nSamples)
	gradWeights := make([]float64, nFeatures)
	lossCurve := make([]float64, 0, lr.maxIter)
	invN := 1.0 / float64(nSamples)

	for iter := 0; iter < lr.maxIter; iter++ {
		for i, row := range rows {
			predictions[i] = Sigmoid(floats.Dot(coef, row) + intercept)
		}
		lossCurve = append(lossCurve, metrics.MeanLogLoss(labels, predictions))

		for j := range gradWeights {
			gradWeights[j] = 0
		}
		gradIntercept := 0.0
		for i, row := range rows {
			residual := predictions[i] - labels[i]
			gradIntercept += residual
			floats.AddScaled(gradWeights, residual, row)
		}
		floats.Scale(invN, gradWeights)
		gradIntercept *= invN

		floats.AddScaled(coef, -lr.learningRate, gradWeights)
		intercept -= lr.learningRate * gradIntercept
	}

	if err := errors.CheckNumericalStability("gradient_update", coef, lr.maxIter); err != nil {
		logger.Warn("Training diverged", log.ErrorTypeKey, "NumericalInstabilityError", log.LearningRateKey, lr.learningRate)
		return err
	}
	if err := errors.CheckScalar("gradient_update", intercept, lr.maxIter); err != nil {
		logger.Warn("Training diverged", log.ErrorTypeKey, "NumericalInstabilityError", log.LearningRateKey, lr.learningRate)
		return err
	}

	lr.coef_ = coef
	lr.intercept_ = intercept
	lr.nIter_ = lr.maxIter
	lr.lossCurve_ = lossCurve
	lr.state.SetFitted(nFeatures, nSamples)

	fields := []any{
		log.OperationKey, log.OperationFit,
		log.IterationKey, lr.nIter_,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if len(lossCurve) > 0 {
		fields = append(fields, log.LossKey, lossCurve[len(lossCurve)-1])
	}
	logger.Debug("Training completed", fields...)

	return nil
}

// DecisionFunction returns the raw linear scores X·w + b as an n×1 matrix.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	scores, err := lr.decisionScores("LogisticRegression.DecisionFunction", "DecisionFunction", X)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(scores), 1, scores), nil
}

// PredictProba returns an n×2 matrix whose rows are [P(y=0), P(y=1)].
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	probs, err := lr.positiveProba("LogisticRegression.PredictProba", "PredictProba", X)
	if err != nil {
		return nil, err
	}

	probas := mat.NewDense(len(probs), 2, nil)
	for i, p := range probs {
		probas.Set(i, 0, 1.0-p)
		probas.Set(i, 1, p)
	}
	return probas, nil
}

// Predict returns an n×1 matrix of labels: 1 where P(y=1) >= 0.5, else 0.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	probs, err := lr.positiveProba("LogisticRegression.Predict", "Predict", X)
	if err != nil {
		return nil, err
	}

	predictions := mat.NewDense(len(probs), 1, nil)
	for i, p := range probs {
		if p >= DecisionThreshold {
			predictions.Set(i, 0, 1)
		}
	}
	return predictions, nil
}

// Score returns the mean accuracy of Predict(X) against y.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	if y == nil {
		return 0, errors.NewModelError("LogisticRegression.Score", "empty data", errors.ErrEmptyData)
	}
	nSamples, _ := predictions.Dims()
	if yRows, _ := y.Dims(); yRows != nSamples {
		return 0, errors.NewDimensionError("LogisticRegression.Score", nSamples, yRows, 0)
	}
	return metrics.AccuracyMatrix(y, predictions)
}

func (lr *LogisticRegression) positiveProba(op, method string, X mat.Matrix) ([]float64, error) {
	scores, err := lr.decisionScores(op, method, X)
	if err != nil {
		return nil, err
	}
	for i, z := range scores {
		scores[i] = Sigmoid(z)
	}
	return scores, nil
}

func (lr *LogisticRegression) decisionScores(op, method string, X mat.Matrix) ([]float64, error) {
	if err := lr.state.RequireFitted(modelName, method); err != nil {
		return nil, err
	}
	rows, err := tableRows(op, X)
	if err != nil {
		return nil, err
	}
	if err := lr.state.RequireFeatures(log.PhaseInference, len(rows), len(rows[0])); err != nil {
		return nil, err
	}

	scores := make([]float64, len(rows))
	for i, row := range rows {
		scores[i] = floats.Dot(lr.coef_, row) + lr.intercept_
	}
	return scores, nil
}

// tableRows copies X into row slices, rejecting empty tables and
// non-finite values.
func tableRows(op string, X mat.Matrix) ([][]float64, error) {
	if X == nil {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	rows := make([][]float64, nSamples)
	for i := range rows {
		row := mat.Row(nil, i, X)
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewValueError(op, fmt.Sprintf("X contains a non-finite value at (%d, %d)", i, j))
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// binaryLabels reads y as an n×1 column of 0/1 values.
func binaryLabels(op string, y mat.Matrix, nSamples int) ([]float64, error) {
	if y == nil {
		return nil, errors.NewDimensionError(op, nSamples, 0, 0)
	}
	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return nil, errors.NewDimensionError(op, nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewValueError(op, fmt.Sprintf("y must be a column vector: got shape (%d, %d)", yRows, yCols))
	}

	labels := make([]float64, nSamples)
	for i := range labels {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return nil, errors.NewValidationError("y", "labels must be 0 or 1", v)
		}
		labels[i] = v
	}
	return labels, nil
}

func (lr *LogisticRegression) getLogger() log.Logger {
	base := lr.logger
	if base == nil {
		base = log.GetLogger()
	}
	return base.With(log.ModelNameKey, modelName)
}

// IsFitted reports whether Fit has completed successfully at least once.
func (lr *LogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Coef returns a copy of the learned weights, nil before fitting.
func (lr *LogisticRegression) Coef() []float64 {
	if lr.coef_ == nil {
		return nil
	}
	coef := make([]float64, len(lr.coef_))
	copy(coef, lr.coef_)
	return coef
}

// Intercept returns the learned bias (0 before fitting).
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept_
}

// NIter returns the number of update steps performed by the last Fit.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter_
}

// LossCurve returns a copy of the mean log-loss recorded at the start of
// every iteration of the last Fit.
func (lr *LogisticRegression) LossCurve() []float64 {
	curve := make([]float64, len(lr.lossCurve_))
	copy(curve, lr.lossCurve_)
	return curve
}

// Classes returns the class labels in PredictProba column order.
func (lr *LogisticRegression) Classes() []int {
	return []int{0, 1}
}

// GetParams returns the model hyperparameters
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate": lr.learningRate,
		"max_iter":      lr.maxIter,
	}
}

// GetState returns a snapshot of the fitted state with hyperparameters attached.
func (lr *LogisticRegression) GetState() model.ModelState {
	state := lr.state.GetState()
	state.Params = lr.GetParams()
	return state
}
