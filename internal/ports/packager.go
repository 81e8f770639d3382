package ports

import (
	"github.com/bft-labs/sasport/internal/domain"
)

// Packager bundles the successful outputs of a batch for delivery.
type Packager interface {
	// Artifacts returns one artifact per success, named from the result's
	// output name, in report order.
	Artifacts(report *domain.BatchReport) []domain.OutputArtifact

	// Archive returns a single combined archive of all successes with
	// stable member ordering matching the report. Failed items are never
	// included. Calling it twice on the same report yields byte-identical
	// output.
	Archive(report *domain.BatchReport) (domain.OutputArtifact, error)
}
