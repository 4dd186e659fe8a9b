package toxicity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/sklearn/linear_model"
)

// recordingEstimator returns canned values and counts calls.
type recordingEstimator struct {
	fitCalls   int
	probaCalls int
	panicOn    string
}

func (r *recordingEstimator) Fit(X, y mat.Matrix) error {
	r.fitCalls++
	if r.panicOn == "Fit" {
		panic("fit exploded")
	}
	return nil
}

func (r *recordingEstimator) Predict(X mat.Matrix) (mat.Matrix, error) {
	n, _ := X.Dims()
	return mat.NewDense(n, 1, nil), nil
}

func (r *recordingEstimator) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	r.probaCalls++
	if r.panicOn == "PredictProba" {
		panic("proba exploded")
	}
	n, _ := X.Dims()
	out := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, 0.25)
		out.Set(i, 1, 0.75)
	}
	return out, nil
}

func (r *recordingEstimator) Score(X, y mat.Matrix) (float64, error) {
	return 0.42, nil
}

func TestNew_ForwardsConfig(t *testing.T) {
	c, err := New(Config{LearningRate: 0.3, MaxIter: 7})
	require.NoError(t, err)

	lr, ok := c.Estimator().(*linear_model.LogisticRegression)
	require.True(t, ok, "default estimator should be LogisticRegression")

	params := lr.GetParams()
	assert.Equal(t, 0.3, params["learning_rate"])
	assert.Equal(t, 7, params["max_iter"])
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{LearningRate: -1, MaxIter: 10})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))

	_, err = New(Config{LearningRate: 0.1, MaxIter: -1})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestClassifier_FitScore(t *testing.T) {
	c, err := New(Config{LearningRate: 0.1, MaxIter: 1000})
	require.NoError(t, err)

	X := mat.NewDense(2, 1, []float64{-5, 5})
	y := mat.NewDense(2, 1, []float64{0, 1})
	require.NoError(t, c.Fit(X, y))

	score, err := c.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	proba, err := c.PredictProba(X)
	require.NoError(t, err)
	r, cols := proba.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, cols)
	for i := 0; i < r; i++ {
		assert.InDelta(t, 1.0, proba.At(i, 0)+proba.At(i, 1), 1e-12)
	}
	assert.Less(t, proba.At(0, 1), 0.5)
	assert.Greater(t, proba.At(1, 1), 0.5)

	pred, err := c.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.At(0, 0))
	assert.Equal(t, 1.0, pred.At(1, 0))
}

func TestClassifier_NotFitted(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	_, err = c.PredictProba(mat.NewDense(1, 1, []float64{1}))
	require.Error(t, err)
	assert.True(t, errors.IsNotFitted(err))
}

func TestClassifier_Delegates(t *testing.T) {
	est := &recordingEstimator{}
	c, err := NewWithEstimator(est)
	require.NoError(t, err)

	X := mat.NewDense(3, 2, nil)
	y := mat.NewDense(3, 1, nil)
	require.NoError(t, c.Fit(X, y))

	proba, err := c.PredictProba(X)
	require.NoError(t, err)
	assert.Equal(t, 0.75, proba.At(2, 1))

	score, err := c.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 0.42, score)

	assert.Equal(t, 1, est.fitCalls)
	assert.Equal(t, 1, est.probaCalls)
	assert.Same(t, est, c.Estimator())
}

func TestClassifier_RecoversPanics(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Classifier) error
		on   string
	}{
		{
			name: "fit",
			on:   "Fit",
			call: func(c *Classifier) error {
				return c.Fit(mat.NewDense(1, 1, nil), mat.NewDense(1, 1, nil))
			},
		},
		{
			name: "predict proba",
			on:   "PredictProba",
			call: func(c *Classifier) error {
				_, err := c.PredictProba(mat.NewDense(1, 1, nil))
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewWithEstimator(&recordingEstimator{panicOn: tt.on})
			require.NoError(t, err)

			err = tt.call(c)
			require.Error(t, err)

			var panicErr *errors.PanicError
			require.True(t, errors.As(err, &panicErr))
			assert.Equal(t, "Classifier."+tt.on, panicErr.Operation)
		})
	}
}

func TestNewWithEstimator_Nil(t *testing.T) {
	_, err := NewWithEstimator(nil)
	assert.True(t, errors.IsConfigError(err))
}
