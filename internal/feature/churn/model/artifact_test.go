package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"churn_backend/internal/feature/churn/domain"
	"churn_backend/internal/feature/churn/domain/entity"
)

// TestTrain_EndToEnd trains on the two-row fixture and checks that predicting
// the same rows reproduces the training labels.
func TestTrain_EndToEnd(t *testing.T) {
	artifact, err := Train(fixtureExamples())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if artifact.ID == "" {
		t.Error("artifact ID is empty")
	}
	if artifact.TrainedAt.IsZero() {
		t.Error("TrainedAt is not set")
	}
	if artifact.TrainingRows != 2 {
		t.Errorf("expected 2 training rows, got %d", artifact.TrainingRows)
	}

	preds, err := artifact.Predict(fixtureRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []entity.Prediction{entity.Churn, entity.NoChurn}
	if !reflect.DeepEqual(preds, want) {
		t.Errorf("predictions %v, want %v", preds, want)
	}
}

func TestTrain_EmptyTable(t *testing.T) {
	if _, err := Train(nil); !errors.Is(err, domain.ErrTraining) {
		t.Errorf("expected ErrTraining, got: %v", err)
	}
}

// TestArtifact_Predict_UnknownCategory verifies that a row outside the
// trained vocabulary rejects the batch.
func TestArtifact_Predict_UnknownCategory(t *testing.T) {
	artifact, err := Train(fixtureExamples())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := fixtureRows()[0]
	bad.OnlineSecurity = "Maybe"

	_, err = artifact.Predict([]entity.Customer{fixtureRows()[0], bad})
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got: %v", err)
	}
}

// TestArtifact_JSONRoundTrip verifies that serialization preserves the
// encoder vocabulary and the model's predictions exactly.
func TestArtifact_JSONRoundTrip(t *testing.T) {
	artifact, err := Train(fixtureExamples())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var restored Artifact
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if restored.ID != artifact.ID {
		t.Errorf("ID mismatch: %q vs %q", restored.ID, artifact.ID)
	}
	if !reflect.DeepEqual(restored.Encoder.Vocab, artifact.Encoder.Vocab) {
		t.Errorf("encoder vocabulary did not round trip")
	}

	for i, row := range fixtureRows() {
		origVec, err := artifact.Encoder.Transform(row)
		if err != nil {
			t.Fatalf("row %d: unexpected error: %v", i, err)
		}
		restVec, err := restored.Encoder.Transform(row)
		if err != nil {
			t.Fatalf("row %d: unexpected error: %v", i, err)
		}
		if !reflect.DeepEqual(origVec, restVec) {
			t.Errorf("row %d: encoded vectors diverge after round trip", i)
		}
		if artifact.Model.PredictProb(origVec) != restored.Model.PredictProb(restVec) {
			t.Errorf("row %d: probabilities diverge after round trip", i)
		}
	}
}
