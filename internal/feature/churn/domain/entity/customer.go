// Package entity defines the domain entities for the churn feature.
package entity

import (
	"fmt"

	"churn_backend/internal/feature/churn/domain"
)

// CategoricalColumns lists the categorical feature columns in encoding order.
// The order is fixed; it determines the layout of encoded feature vectors.
var CategoricalColumns = []string{
	"Partner",
	"Dependents",
	"MultipleLines",
	"InternetService",
	"OnlineSecurity",
}

// Customer is one feature row of the fixed seven-column schema: tenure in
// months, the senior-citizen flag, and five categorical service attributes.
// Rows are constructed per request and never persisted.
type Customer struct {
	Tenure          int
	SeniorCitizen   int
	Partner         string
	Dependents      string
	MultipleLines   string
	InternetService string
	OnlineSecurity  string
}

// Categorical returns the value of the named categorical column.
func (c Customer) Categorical(column string) string {
	switch column {
	case "Partner":
		return c.Partner
	case "Dependents":
		return c.Dependents
	case "MultipleLines":
		return c.MultipleLines
	case "InternetService":
		return c.InternetService
	case "OnlineSecurity":
		return c.OnlineSecurity
	}
	return ""
}

// TrainingExample is a customer row paired with its binary churn label.
type TrainingExample struct {
	Customer Customer
	// Label is 1 for churned, 0 for retained.
	Label int
}

// ParseChurnLabel maps a raw Churn column value to its binary label.
// The mapping is exhaustive: "Yes" -> 1, "No" -> 0, anything else is
// ErrUnknownLabel.
func ParseChurnLabel(raw string) (int, error) {
	switch raw {
	case "Yes":
		return 1, nil
	case "No":
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownLabel, raw)
}

// Prediction is a single binary churn decision.
type Prediction int

const (
	NoChurn Prediction = 0
	Churn   Prediction = 1
)

// String returns the human-readable form used in API responses.
func (p Prediction) String() string {
	if p == Churn {
		return "Customer Will Churn"
	}
	return "Customer Will Not Churn"
}

// PredictionSummary holds per-row predictions in input order together with
// their churn / no-churn aggregation.
type PredictionSummary struct {
	Predictions []Prediction
	Churned     int
	NotChurned  int
}

// Summarize reduces a prediction sequence to its summary counts.
func Summarize(preds []Prediction) *PredictionSummary {
	s := &PredictionSummary{Predictions: preds}
	for _, p := range preds {
		if p == Churn {
			s.Churned++
		} else {
			s.NotChurned++
		}
	}
	return s
}
