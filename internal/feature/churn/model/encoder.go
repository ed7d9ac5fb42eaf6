// Package model implements the churn preprocessing and classification
// pipeline: the one-hot encoder, the gradient-boosted classifier, and the
// persisted artifact bundling the two.
package model

import (
	"fmt"
	"sort"

	"churn_backend/internal/feature/churn/domain"
	"churn_backend/internal/feature/churn/domain/entity"
)

// numericWidth is the number of leading passthrough columns in an encoded
// vector (SeniorCitizen, Tenure).
const numericWidth = 2

// OneHotEncoder maps categorical feature values to indicator columns. The
// vocabulary is learned once from the training table and reused verbatim for
// every later transform; it is never re-derived from prediction input.
type OneHotEncoder struct {
	// Vocab holds, per categorical column, the sorted list of values observed
	// during fitting. The position of a value within its column's slice
	// determines its indicator column.
	Vocab map[string][]string `json:"vocabularies"`
}

// FitOneHotEncoder learns the per-column vocabularies from the given rows.
func FitOneHotEncoder(rows []entity.Customer) (*OneHotEncoder, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to fit encoder", domain.ErrTraining)
	}

	vocab := make(map[string][]string, len(entity.CategoricalColumns))
	for _, col := range entity.CategoricalColumns {
		seen := make(map[string]struct{})
		for _, r := range rows {
			seen[r.Categorical(col)] = struct{}{}
		}
		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		// Sorted so the column layout is deterministic across fits.
		sort.Strings(values)
		vocab[col] = values
	}

	return &OneHotEncoder{Vocab: vocab}, nil
}

// Width returns the length of encoded feature vectors.
func (e *OneHotEncoder) Width() int {
	w := numericWidth
	for _, col := range entity.CategoricalColumns {
		w += len(e.Vocab[col])
	}
	return w
}

// Transform encodes a customer row into a numeric feature vector: the two
// numeric columns pass through first, followed by one indicator column per
// observed categorical value. A value outside the trained vocabulary is an
// error, never a silent all-zeros encoding.
func (e *OneHotEncoder) Transform(c entity.Customer) ([]float64, error) {
	vec := make([]float64, e.Width())
	vec[0] = float64(c.SeniorCitizen)
	vec[1] = float64(c.Tenure)

	offset := numericWidth
	for _, col := range entity.CategoricalColumns {
		values := e.Vocab[col]
		idx := sort.SearchStrings(values, c.Categorical(col))
		if idx >= len(values) || values[idx] != c.Categorical(col) {
			return nil, fmt.Errorf("%w: %s=%q", domain.ErrUnknownCategory, col, c.Categorical(col))
		}
		vec[offset+idx] = 1
		offset += len(values)
	}

	return vec, nil
}

// Decode recovers the customer row from an encoded vector. Inverse of
// Transform for vectors produced by this encoder.
func (e *OneHotEncoder) Decode(vec []float64) (entity.Customer, error) {
	if len(vec) != e.Width() {
		return entity.Customer{}, fmt.Errorf("vector width %d does not match encoder width %d", len(vec), e.Width())
	}

	c := entity.Customer{
		SeniorCitizen: int(vec[0]),
		Tenure:        int(vec[1]),
	}

	offset := numericWidth
	for _, col := range entity.CategoricalColumns {
		values := e.Vocab[col]
		value := ""
		for i, v := range values {
			if vec[offset+i] == 1 {
				value = v
				break
			}
		}
		if value == "" {
			return entity.Customer{}, fmt.Errorf("no indicator set for column %s", col)
		}
		switch col {
		case "Partner":
			c.Partner = value
		case "Dependents":
			c.Dependents = value
		case "MultipleLines":
			c.MultipleLines = value
		case "InternetService":
			c.InternetService = value
		case "OnlineSecurity":
			c.OnlineSecurity = value
		}
		offset += len(values)
	}

	return c, nil
}

// FitEncoder runs the preprocessing stage over a labeled training table:
// it fits the encoder, encodes every row, and collects the label vector.
// Output row order matches input order.
func FitEncoder(examples []entity.TrainingExample) ([][]float64, []int, *OneHotEncoder, error) {
	rows := make([]entity.Customer, len(examples))
	labels := make([]int, len(examples))
	for i, ex := range examples {
		rows[i] = ex.Customer
		labels[i] = ex.Label
	}

	enc, err := FitOneHotEncoder(rows)
	if err != nil {
		return nil, nil, nil, err
	}

	matrix := make([][]float64, len(rows))
	for i, r := range rows {
		vec, err := enc.Transform(r)
		if err != nil {
			// Unreachable for rows the encoder was fitted on.
			return nil, nil, nil, err
		}
		matrix[i] = vec
	}

	return matrix, labels, enc, nil
}
