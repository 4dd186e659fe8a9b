package linear_model

import "github.com/YuminosukeSato/toxiclf/pkg/log"

// Option is a functional option for LogisticRegression
type Option func(*LogisticRegression)

// WithLearningRate sets the gradient descent step size
func WithLearningRate(learningRate float64) Option {
	return func(lr *LogisticRegression) {
		lr.learningRate = learningRate
	}
}

// WithMaxIter sets the exact number of gradient descent iterations
func WithMaxIter(maxIter int) Option {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLogger sets the logger used during training. Defaults to log.GetLogger().
func WithLogger(logger log.Logger) Option {
	return func(lr *LogisticRegression) {
		lr.logger = logger
	}
}
