// Package dto defines data transfer objects for the churn feature's HTTP transport layer.
package dto

// PredictReq is a single customer row assembled from discrete named fields.
// Used when /predict is called with a JSON body instead of a file upload.
// The field names match the training table's column names.
type PredictReq struct {
	Tenure          int    `json:"tenure" binding:"min=0"`
	SeniorCitizen   int    `json:"SeniorCitizen" binding:"oneof=0 1"`
	Partner         string `json:"Partner" binding:"required"`
	Dependents      string `json:"Dependents" binding:"required"`
	MultipleLines   string `json:"MultipleLines" binding:"required"`
	InternetService string `json:"InternetService" binding:"required"`
	OnlineSecurity  string `json:"OnlineSecurity" binding:"required"`
}
