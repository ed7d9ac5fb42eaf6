package dto

// PredictResp carries one prediction per input row, in input order, plus the
// churn / no-churn aggregation.
type PredictResp struct {
	Predictions     []string `json:"predictions"`
	ChurnedCount    int      `json:"churned_count"`
	NotChurnedCount int      `json:"non_churned_count"`
}

// TrainResp describes the artifact produced by a training run.
type TrainResp struct {
	ArtifactID   string `json:"artifact_id"`
	TrainedAt    string `json:"trained_at"`
	TrainingRows int    `json:"training_rows"`
}
