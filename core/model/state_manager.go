package model

import (
	"github.com/YuminosukeSato/toxiclf/pkg/errors"
)

// StateManager records whether a model has been fitted and the shape of
// the table it was fitted on.
//
// It holds no lock: like the estimators that embed it, a StateManager must
// not be mutated concurrently.
type StateManager struct {
	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	return s.fitted
}

// SetFitted marks the model as fitted on a table of the given shape.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset returns the manager to the unfitted state.
func (s *StateManager) Reset() {
	*s = StateManager{}
}

// GetDimensions returns the number of features and samples seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a *errors.NotFittedError if the model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.fitted {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// RequireFeatures checks that a table with nFeatures columns matches the
// fitted shape. The row count of the expected shape is reported as -1.
func (s *StateManager) RequireFeatures(phase string, nSamples, nFeatures int) error {
	if nFeatures != s.nFeatures {
		return errors.NewInputShapeError(phase, []int{-1, s.nFeatures}, []int{nSamples, nFeatures})
	}
	return nil
}

// ModelState is a snapshot of the fitted state, used for logging and debugging.
type ModelState struct {
	Fitted    bool                   `json:"fitted"`
	NFeatures int                    `json:"n_features,omitempty"`
	NSamples  int                    `json:"n_samples,omitempty"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

// GetState returns the current state as a ModelState struct.
func (s *StateManager) GetState() ModelState {
	return ModelState{
		Fitted:    s.fitted,
		NFeatures: s.nFeatures,
		NSamples:  s.nSamples,
	}
}
