// Package toxiclf is a binary toxicity classifier for Go services.
//
// The model is a logistic regression trained by full-batch gradient
// descent. Training is deterministic: it always starts from zero weights
// and takes exactly the configured number of steps.
//
// # Packages
//
//   - sklearn/linear_model: the LogisticRegression estimator
//   - toxicity: the adapter used by applications, configured from YAML or a
//     parameter map
//   - sklearn/model_selection: k-fold splitting and parallel cross-validation
//   - metrics: accuracy, log-loss and ROC AUC
//   - pkg/dataset, pkg/report: CSV loading and loss-curve plots
//   - pkg/errors, pkg/log: typed errors and structured logging
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/toxiclf/toxicity"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    clf, err := toxicity.New(toxicity.Config{LearningRate: 0.1, MaxIter: 1000})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    X := mat.NewDense(2, 1, []float64{-5, 5})
//	    y := mat.NewDense(2, 1, []float64{0, 1})
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    proba, err := clf.PredictProba(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("P(toxic) = %.3f\n", proba.At(1, 1))
//	}
//
// # Errors
//
// Failures are typed. Use errors.IsConfigError, errors.IsShapeError and
// errors.IsNotFitted from pkg/errors to branch on the category.
package toxiclf
