// Package handler provides the HTTP handlers for the churn feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"churn_backend/internal/api"
	"churn_backend/internal/feature/churn/adapters/dataset"
	"churn_backend/internal/feature/churn/domain"
	"churn_backend/internal/feature/churn/domain/entity"
	"churn_backend/internal/feature/churn/model"
	"churn_backend/internal/feature/churn/transport/http/dto"
)

// uploadField is the multipart form field carrying the prediction input file.
// The name is kept from the original form for client compatibility.
const uploadField = "csv_file"

// ChurnUsecase defines the churn pipeline operations the handlers depend on.
// Following Go convention, the interface is defined by the consumer (handler),
// not the provider (usecase).
type ChurnUsecase interface {
	// Predict classifies the given rows with the current artifact.
	Predict(ctx context.Context, rows []entity.Customer) (*entity.PredictionSummary, error)
	// Train fits, persists, and activates a new artifact.
	Train(ctx context.Context, examples []entity.TrainingExample) (*model.Artifact, error)
}

// ChurnHandler processes HTTP requests for churn prediction and retraining.
type ChurnHandler struct {
	churn ChurnUsecase
	// trainingDataPath is the tabular training source consumed by Train.
	trainingDataPath string
}

// NewChurnHandler creates a new ChurnHandler instance.
// Constructor for dependency injection.
func NewChurnHandler(churn ChurnUsecase, trainingDataPath string) *ChurnHandler {
	return &ChurnHandler{churn: churn, trainingDataPath: trainingDataPath}
}

// Predict handles the churn prediction endpoint. Input is either an uploaded
// row-oriented file (CSV or XLSX, form field "csv_file") or a single JSON row
// matching the seven-feature schema.
// - returns 400 on malformed input or categories outside the trained vocabulary
// - returns 503 while no trained artifact is loaded
// - returns 200 with per-row labels and churn counts on success
func (h *ChurnHandler) Predict(c *gin.Context) {
	rows, ok := h.predictionRows(c)
	if !ok {
		return
	}

	summary, err := h.churn.Predict(c.Request.Context(), rows)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrModelNotTrained):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "model not trained"})
		case errors.Is(err, domain.ErrUnknownCategory):
			// Reject the batch instead of silently zero-encoding the row.
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("prediction failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "prediction failed"})
		}
		return
	}

	labels := make([]string, len(summary.Predictions))
	for i, p := range summary.Predictions {
		labels[i] = p.String()
	}
	c.JSON(http.StatusOK, dto.PredictResp{
		Predictions:     labels,
		ChurnedCount:    summary.Churned,
		NotChurnedCount: summary.NotChurned,
	})
}

// predictionRows extracts the customer rows from the request, either from an
// uploaded file or from a JSON body. On failure it writes the error response
// and returns ok=false.
func (h *ChurnHandler) predictionRows(c *gin.Context) ([]entity.Customer, bool) {
	fileHeader, err := c.FormFile(uploadField)
	if err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unreadable upload"})
			return nil, false
		}
		defer f.Close()

		var rows []entity.Customer
		if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			rows, err = dataset.ReadCustomersXLSX(f)
		} else {
			rows, err = dataset.ReadCustomersCSV(f)
		}
		if err != nil {
			slog.Warn("prediction upload rejected", "error", err, "filename", fileHeader.Filename)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return nil, false
		}
		if len(rows) == 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no data rows in upload"})
			return nil, false
		}
		return rows, true
	}

	var req dto.PredictReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("predict validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return nil, false
	}
	return []entity.Customer{{
		Tenure:          req.Tenure,
		SeniorCitizen:   req.SeniorCitizen,
		Partner:         req.Partner,
		Dependents:      req.Dependents,
		MultipleLines:   req.MultipleLines,
		InternetService: req.InternetService,
		OnlineSecurity:  req.OnlineSecurity,
	}}, true
}

// Train handles the administrative retraining endpoint. It reads the
// configured training table, fits a new artifact, and swaps it in.
// - returns 400 when the training data is malformed (unknown labels etc.)
// - returns 500 when the training source cannot be read
// - returns 200 with the new artifact's metadata on success
func (h *ChurnHandler) Train(c *gin.Context) {
	f, err := os.Open(h.trainingDataPath)
	if err != nil {
		slog.Error("training data unavailable", "error", err, "path", h.trainingDataPath)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "training data unavailable"})
		return
	}
	defer f.Close()

	var examples []entity.TrainingExample
	if strings.HasSuffix(strings.ToLower(h.trainingDataPath), ".xlsx") {
		examples, err = dataset.ReadTrainingXLSX(f)
	} else {
		examples, err = dataset.ReadTrainingCSV(f)
	}
	if err != nil {
		slog.Error("training data rejected", "error", err, "path", h.trainingDataPath)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	artifact, err := h.churn.Train(c.Request.Context(), examples)
	if err != nil {
		if errors.Is(err, domain.ErrTraining) || errors.Is(err, domain.ErrUnknownLabel) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("training failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "training failed"})
		return
	}

	slog.Info("model retrained", "artifact_id", artifact.ID, "rows", artifact.TrainingRows)
	c.JSON(http.StatusOK, dto.TrainResp{
		ArtifactID:   artifact.ID,
		TrainedAt:    artifact.TrainedAt.Format(time.RFC3339),
		TrainingRows: artifact.TrainingRows,
	})
}
