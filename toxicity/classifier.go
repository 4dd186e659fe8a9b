// Package toxicity exposes the binary toxicity classifier used by the
// command line tool. It is a thin adapter: every call is forwarded to a
// model.ProbabilisticClassifier, by default a linear_model.LogisticRegression.
package toxicity

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/toxiclf/core/model"
	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/sklearn/linear_model"
)

// Classifier wraps an estimator behind the Fit / PredictProba / Score
// surface. Panics raised by the wrapped estimator are returned as
// *errors.PanicError.
type Classifier struct {
	estimator model.ProbabilisticClassifier
}

// New builds a Classifier around a LogisticRegression configured with cfg.
func New(cfg Config) (*Classifier, error) {
	est, err := linear_model.NewLogisticRegression(
		linear_model.WithLearningRate(cfg.LearningRate),
		linear_model.WithMaxIter(cfg.MaxIter),
	)
	if err != nil {
		return nil, err
	}
	return &Classifier{estimator: est}, nil
}

// NewWithEstimator wraps any drop-in estimator.
func NewWithEstimator(est model.ProbabilisticClassifier) (*Classifier, error) {
	if est == nil {
		return nil, errors.NewValidationError("estimator", "must not be nil", nil)
	}
	return &Classifier{estimator: est}, nil
}

// Fit trains the wrapped estimator.
func (c *Classifier) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Classifier.Fit")
	return c.estimator.Fit(X, y)
}

// PredictProba returns an n×2 matrix of [P(non-toxic), P(toxic)].
func (c *Classifier) PredictProba(X mat.Matrix) (proba mat.Matrix, err error) {
	defer errors.Recover(&err, "Classifier.PredictProba")
	return c.estimator.PredictProba(X)
}

// Predict returns n×1 hard labels.
func (c *Classifier) Predict(X mat.Matrix) (pred mat.Matrix, err error) {
	defer errors.Recover(&err, "Classifier.Predict")
	return c.estimator.Predict(X)
}

// Score returns the mean accuracy on X and y.
func (c *Classifier) Score(X, y mat.Matrix) (score float64, err error) {
	defer errors.Recover(&err, "Classifier.Score")
	return c.estimator.Score(X, y)
}

// Estimator returns the wrapped estimator.
func (c *Classifier) Estimator() model.ProbabilisticClassifier {
	return c.estimator
}
