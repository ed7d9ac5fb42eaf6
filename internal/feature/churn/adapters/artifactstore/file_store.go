// Package artifactstore persists the trained model artifact to durable
// storage.
package artifactstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"churn_backend/internal/feature/churn/domain"
	"churn_backend/internal/feature/churn/model"
	"churn_backend/internal/feature/churn/usecase"
)

// fileStore keeps the artifact as a JSON blob on the local filesystem.
// Writes go through a temp file and rename, so a crashed training run can
// never leave a half-written artifact behind.
type fileStore struct {
	path string
}

// Compile-time check that fileStore implements ArtifactStore.
var _ usecase.ArtifactStore = (*fileStore)(nil)

// NewFileStore creates a file-backed artifact store at the given path.
func NewFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

// Save serializes the artifact and replaces the stored blob atomically.
func (s *fileStore) Save(a *model.Artifact) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact dir: %w", err)
		}
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// Load reads and deserializes the stored artifact.
// It returns domain.ErrArtifactNotFound when no blob exists yet.
func (s *fileStore) Load() (*model.Artifact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var a model.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal artifact: %w", err)
	}
	return &a, nil
}
