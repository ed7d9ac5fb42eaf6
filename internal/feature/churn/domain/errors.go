// Package domain defines domain-level errors for the churn feature.
package domain

import "errors"

// Domain errors for the churn pipeline. These represent data-quality and
// lifecycle failures and should be handled appropriately by upper layers.
var (
	// ErrUnknownLabel indicates a training row whose Churn value is neither
	// "Yes" nor "No". Fatal to a training run.
	ErrUnknownLabel = errors.New("unknown churn label")

	// ErrUnknownCategory indicates a prediction-time categorical value that
	// was never observed during training. The batch is rejected rather than
	// silently encoded as all zeros.
	ErrUnknownCategory = errors.New("category not seen during training")

	// ErrTraining indicates malformed training input (mismatched matrix and
	// label sizes, non-binary labels, empty data).
	ErrTraining = errors.New("invalid training data")

	// ErrModelNotTrained indicates that no trained artifact is available.
	ErrModelNotTrained = errors.New("churn model has not been trained")

	// ErrArtifactNotFound indicates that no persisted artifact exists at the
	// configured location.
	ErrArtifactNotFound = errors.New("model artifact not found")
)
