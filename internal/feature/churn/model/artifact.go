package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"churn_backend/internal/feature/churn/domain/entity"
)

// Artifact is the persisted unit of a training run: the fitted encoder and
// the fitted classifier travel together. Neither half is exposed for
// persistence on its own, so a mismatched encoder/model pairing cannot be
// constructed by loading two files in the wrong order. An artifact is
// immutable once created and safe to share across request handlers.
type Artifact struct {
	ID           string         `json:"id"`
	TrainedAt    time.Time      `json:"trained_at"`
	TrainingRows int            `json:"training_rows"`
	Encoder      *OneHotEncoder `json:"encoder"`
	Model        *GBDT          `json:"model"`
}

// Train runs the full training stage over a labeled table: fit the encoder,
// encode the table, fit the classifier, and bundle the pair. Any failure
// aborts before an artifact exists, so a bad run can never be persisted.
func Train(examples []entity.TrainingExample) (*Artifact, error) {
	matrix, labels, enc, err := FitEncoder(examples)
	if err != nil {
		return nil, err
	}

	clf := NewGBDT(DefaultGBDTParams())
	if err := clf.Fit(matrix, labels); err != nil {
		return nil, err
	}

	return &Artifact{
		ID:           uuid.NewString(),
		TrainedAt:    time.Now().UTC(),
		TrainingRows: len(examples),
		Encoder:      enc,
		Model:        clf,
	}, nil
}

// Predict transforms each row through the artifact's own encoder and returns
// one binary label per row, in input order. A categorical value outside the
// trained vocabulary rejects the whole batch.
func (a *Artifact) Predict(rows []entity.Customer) ([]entity.Prediction, error) {
	preds := make([]entity.Prediction, len(rows))
	for i, row := range rows {
		vec, err := a.Encoder.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		preds[i] = entity.Prediction(a.Model.Predict(vec))
	}
	return preds, nil
}
