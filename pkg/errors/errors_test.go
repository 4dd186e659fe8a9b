package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "empty data",
			err:      ErrEmptyData,
			wantMsg:  "toxiclf: Fit: empty data: empty data",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "toxiclf: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Fit", 10, 8, 0)

	want := "toxiclf: Fit: dimension mismatch on axis 0 (rows). Expected 10, got 8"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 10 || dimErr.Got != 8 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LogisticRegression", "PredictProba")

	want := "toxiclf: LogisticRegression: this model is not fitted yet. Call Fit() before using PredictProba()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	if !IsNotFitted(err) {
		t.Error("IsNotFitted should report true")
	}
}

func TestNewInputShapeError(t *testing.T) {
	err := NewInputShapeError("prediction", []int{-1, 3}, []int{4, 2})

	want := "toxiclf: input shape mismatch in prediction phase. Expected shape [-1 3], got [4 2]"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	if !IsShapeError(err) {
		t.Error("IsShapeError should report true")
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantConfig bool
		wantShape  bool
		wantNotFit bool
	}{
		{"validation", NewValidationError("learning_rate", "must be positive", -1.0), true, false, false},
		{"empty data", NewModelError("Fit", "empty data", ErrEmptyData), true, false, false},
		{"wrapped empty data", Wrap(NewModelError("Fit", "empty data", ErrEmptyData), "cv fold 2"), true, false, false},
		{"dimension", NewDimensionError("Fit", 4, 3, 0), false, true, false},
		{"input shape", NewInputShapeError("prediction", []int{-1, 3}, []int{2, 2}), false, true, false},
		{"not fitted", NewNotFittedError("LogisticRegression", "Predict"), false, false, true},
		{"plain", New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigError(tt.err); got != tt.wantConfig {
				t.Errorf("IsConfigError() = %v, want %v", got, tt.wantConfig)
			}
			if got := IsShapeError(tt.err); got != tt.wantShape {
				t.Errorf("IsShapeError() = %v, want %v", got, tt.wantShape)
			}
			if got := IsNotFitted(tt.err); got != tt.wantNotFit {
				t.Errorf("IsNotFitted() = %v, want %v", got, tt.wantNotFit)
			}
		})
	}
}

func TestNumericalInstabilityError(t *testing.T) {
	values := []float64{1, math.NaN(), 3, 4, 5, 6, 7}
	err := CheckNumericalStability("gradient_update", values, 12)
	if err == nil {
		t.Fatal("expected instability error")
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected *NumericalInstabilityError, got %T", err)
	}
	if numErr.Iteration != 12 {
		t.Errorf("Iteration = %d, want 12", numErr.Iteration)
	}
	if !strings.HasSuffix(err.Error(), "Values: [1, NaN, 3, 4, 5, ...]") {
		t.Errorf("unexpected message: %s", err.Error())
	}

	if err := CheckNumericalStability("gradient_update", []float64{1, 2}, 0); err != nil {
		t.Errorf("finite values reported unstable: %v", err)
	}
	if err := CheckScalar("intercept", math.Inf(1), 3); err == nil {
		t.Error("expected error for +Inf scalar")
	}
}

func TestClipValue(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{1e10, -500, 500, 500},
		{-1e10, -500, 500, -500},
		{3.5, -500, 500, 3.5},
	}
	for _, tt := range tests {
		if got := ClipValue(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("ClipValue(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestStabilizeLog(t *testing.T) {
	if got := StabilizeLog(0); math.IsInf(got, 0) {
		t.Error("StabilizeLog(0) must be finite")
	}
	if got := StabilizeLog(1); got != 0 {
		t.Errorf("StabilizeLog(1) = %v, want 0", got)
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "loading %s", "train.csv")
	if !Is(wrapped, ErrEmptyData) {
		t.Error("wrapped error should match ErrEmptyData")
	}
	want := "loading train.csv: empty data"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}
