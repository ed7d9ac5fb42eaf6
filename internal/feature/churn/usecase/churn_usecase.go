// Package usecase implements the business logic for the churn feature.
package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"churn_backend/internal/feature/churn/domain"
	"churn_backend/internal/feature/churn/domain/entity"
	"churn_backend/internal/feature/churn/model"
)

// ArtifactStore abstracts the durable storage for trained artifacts.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type ArtifactStore interface {
	// Save persists the artifact, replacing any previous one wholesale.
	Save(a *model.Artifact) error

	// Load retrieves the persisted artifact.
	// It returns domain.ErrArtifactNotFound when none exists.
	Load() (*model.Artifact, error)
}

// churnUsecase owns the churn prediction pipeline. The current artifact is
// held behind an atomic pointer: handlers read it lock-free, and a retrain
// swaps it wholesale after the new artifact has been persisted. There is no
// package-level model state.
type churnUsecase struct {
	store   ArtifactStore
	current atomic.Pointer[model.Artifact]
}

// NewChurnUsecase creates a new churnUsecase instance.
func NewChurnUsecase(store ArtifactStore) *churnUsecase {
	return &churnUsecase{store: store}
}

// LoadArtifact reads the persisted artifact into memory. Called once at
// process start; it never triggers training.
func (u *churnUsecase) LoadArtifact(ctx context.Context) (*model.Artifact, error) {
	a, err := u.store.Load()
	if err != nil {
		return nil, err
	}
	u.current.Store(a)
	return a, nil
}

// Train fits a new artifact on the given training table, persists it, and
// only then makes it the serving artifact. Any error aborts before the
// previous artifact is touched.
func (u *churnUsecase) Train(ctx context.Context, examples []entity.TrainingExample) (*model.Artifact, error) {
	a, err := model.Train(examples)
	if err != nil {
		return nil, err
	}
	if err := u.store.Save(a); err != nil {
		return nil, fmt.Errorf("persist artifact: %w", err)
	}
	u.current.Store(a)
	return a, nil
}

// Predict classifies the given rows with the loaded artifact and aggregates
// the churn / no-churn counts. It returns domain.ErrModelNotTrained when no
// artifact has been loaded or trained yet.
func (u *churnUsecase) Predict(ctx context.Context, rows []entity.Customer) (*entity.PredictionSummary, error) {
	a := u.current.Load()
	if a == nil {
		return nil, domain.ErrModelNotTrained
	}

	preds, err := a.Predict(rows)
	if err != nil {
		return nil, err
	}
	return entity.Summarize(preds), nil
}

// Artifact returns the currently served artifact, or nil when untrained.
func (u *churnUsecase) Artifact() *model.Artifact {
	return u.current.Load()
}
