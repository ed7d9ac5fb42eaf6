package model

import (
	"errors"
	"reflect"
	"testing"

	"churn_backend/internal/feature/churn/domain"
	"churn_backend/internal/feature/churn/domain/entity"
)

// fixtureRows returns the two-row fixture with one high-risk and one
// low-risk customer.
func fixtureRows() []entity.Customer {
	return []entity.Customer{
		{
			Tenure:          1,
			SeniorCitizen:   0,
			Partner:         "Yes",
			Dependents:      "No",
			MultipleLines:   "No",
			InternetService: "Fiber optic",
			OnlineSecurity:  "No",
		},
		{
			Tenure:          72,
			SeniorCitizen:   0,
			Partner:         "Yes",
			Dependents:      "Yes",
			MultipleLines:   "Yes",
			InternetService: "DSL",
			OnlineSecurity:  "Yes",
		},
	}
}

func fixtureExamples() []entity.TrainingExample {
	rows := fixtureRows()
	return []entity.TrainingExample{
		{Customer: rows[0], Label: 1},
		{Customer: rows[1], Label: 0},
	}
}

func TestFitOneHotEncoder(t *testing.T) {
	t.Run("learns sorted vocabularies per column", func(t *testing.T) {
		enc, err := FitOneHotEncoder(fixtureRows())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := enc.Vocab["Partner"]; !reflect.DeepEqual(got, []string{"Yes"}) {
			t.Errorf("unexpected Partner vocabulary: %v", got)
		}
		if got := enc.Vocab["InternetService"]; !reflect.DeepEqual(got, []string{"DSL", "Fiber optic"}) {
			t.Errorf("unexpected InternetService vocabulary: %v", got)
		}
	})

	t.Run("empty input fails", func(t *testing.T) {
		if _, err := FitOneHotEncoder(nil); !errors.Is(err, domain.ErrTraining) {
			t.Errorf("expected ErrTraining, got: %v", err)
		}
	})
}

func TestOneHotEncoder_Transform(t *testing.T) {
	enc, err := FitOneHotEncoder(fixtureRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("numeric columns pass through, categories become indicators", func(t *testing.T) {
		vec, err := enc.Transform(fixtureRows()[0])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(vec) != enc.Width() {
			t.Fatalf("expected width %d, got %d", enc.Width(), len(vec))
		}
		if vec[0] != 0 || vec[1] != 1 {
			t.Errorf("expected numeric prefix [0 1], got [%v %v]", vec[0], vec[1])
		}

		var indicators float64
		for _, v := range vec[2:] {
			if v != 0 && v != 1 {
				t.Errorf("indicator column holds %v, expected 0 or 1", v)
			}
			indicators += v
		}
		// Exactly one indicator per categorical column.
		if int(indicators) != len(entity.CategoricalColumns) {
			t.Errorf("expected %d set indicators, got %v", len(entity.CategoricalColumns), indicators)
		}
	})

	t.Run("unseen category is rejected", func(t *testing.T) {
		row := fixtureRows()[0]
		row.InternetService = "Carrier pigeon"

		_, err := enc.Transform(row)
		if !errors.Is(err, domain.ErrUnknownCategory) {
			t.Errorf("expected ErrUnknownCategory, got: %v", err)
		}
	})
}

// TestOneHotEncoder_RoundTrip verifies that decoding an encoded training row
// recovers the original categories.
func TestOneHotEncoder_RoundTrip(t *testing.T) {
	rows := fixtureRows()
	enc, err := FitOneHotEncoder(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, row := range rows {
		vec, err := enc.Transform(row)
		if err != nil {
			t.Fatalf("row %d: unexpected error: %v", i, err)
		}
		decoded, err := enc.Decode(vec)
		if err != nil {
			t.Fatalf("row %d: unexpected error: %v", i, err)
		}
		if decoded != row {
			t.Errorf("row %d: round trip mismatch:\n got %+v\nwant %+v", i, decoded, row)
		}
	}
}

func TestFitEncoder(t *testing.T) {
	t.Run("matrix, labels and encoder line up", func(t *testing.T) {
		matrix, labels, enc, err := FitEncoder(fixtureExamples())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(matrix) != 2 || len(labels) != 2 {
			t.Fatalf("expected 2 rows and 2 labels, got %d and %d", len(matrix), len(labels))
		}
		if labels[0] != 1 || labels[1] != 0 {
			t.Errorf("labels out of order: %v", labels)
		}
		for i, row := range matrix {
			if len(row) != enc.Width() {
				t.Errorf("row %d: width %d, encoder width %d", i, len(row), enc.Width())
			}
		}
	})

	t.Run("empty table fails", func(t *testing.T) {
		if _, _, _, err := FitEncoder(nil); !errors.Is(err, domain.ErrTraining) {
			t.Errorf("expected ErrTraining, got: %v", err)
		}
	})
}
