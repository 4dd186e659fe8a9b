// Standard attribute keys for machine learning log records.
//
// Keys follow a hierarchical naming convention ("model.name",
// "data.samples") so records from different components can be filtered
// the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "LogisticRegression", "ToxicityClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the machine learning operation being performed.
	// Standard values: "fit", "predict", "predict_proba", "score", "cross_validate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Performance Metrics
const (
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// LossKey records the mean log-loss.
	LossKey = "metrics.loss"

	IterationKey = "training.iteration"

	// FoldKey identifies a cross-validation fold.
	FoldKey = "training.fold"
)

// Error Context
const (
	ErrorTypeKey = "error.type"
)

// Hyperparameters
const (
	LearningRateKey = "hyperparams.learning_rate"
	MaxIterKey      = "hyperparams.max_iter"
)

// Standard attribute values.
const (
	OperationFit           = "fit"
	OperationPredict       = "predict"
	OperationPredictProba  = "predict_proba"
	OperationScore         = "score"
	OperationCrossValidate = "cross_validate"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"
)
