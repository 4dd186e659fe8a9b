// Package model defines the capability contracts shared by estimators and
// the adapters that wrap them.
//
// Tables are n×m gonum matrices (one row per sample). Labels are n×1
// column vectors holding 0 or 1.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for models that learn from a training table.
type Fitter interface {
	// Fit trains the model. Each call replaces previously learned parameters.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce hard labels.
type Predictor interface {
	// Predict returns an n×1 matrix of predicted labels.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the mean accuracy on the given table and labels.
	Score(X, y mat.Matrix) (float64, error)
}

// ProbabilisticClassifier is the binary classifier contract. Any
// implementation is interchangeable as long as PredictProba returns an n×2
// matrix whose column 0 is P(class 0) and column 1 is P(class 1).
type ProbabilisticClassifier interface {
	Fitter
	Predictor
	Scorer

	// PredictProba returns probability estimates for each class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel is implemented by classifiers with a weight vector and a bias.
type LinearModel interface {
	// Coef returns a copy of the learned weights, nil before fitting.
	Coef() []float64
	// Intercept returns the learned bias.
	Intercept() float64
}

// ParameterGetter is the interface for models that expose their hyperparameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
