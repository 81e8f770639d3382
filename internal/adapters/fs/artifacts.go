package fs

import (
	"os"
	"path/filepath"

	"github.com/bft-labs/sasport/internal/domain"
)

// WriteArtifacts materializes artifacts into dir, creating it if needed.
// Artifact names are flattened to their base name so a crafted upload name
// cannot escape the output directory.
func WriteArtifacts(dir string, artifacts []domain.OutputArtifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, a := range artifacts {
		path := filepath.Join(dir, filepath.Base(a.Name))
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
