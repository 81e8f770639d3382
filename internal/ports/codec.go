package ports

import (
	"context"

	"github.com/bft-labs/sasport/internal/domain"
)

// Codec performs the actual XPORT to SAS7BDAT translation.
// Implementations may call an in-process library or shell out to an external
// converter; the batch driver treats every backend identically through this
// one contract. Backend selection is a configuration concern.
type Codec interface {
	// Convert translates one transport file and returns the dataset bytes.
	// Failures are reported as *domain.CodecError: malformed input,
	// unsupported structure, or backend unavailability.
	Convert(ctx context.Context, item domain.InputItem) ([]byte, error)

	// Available probes the backend without converting anything.
	// Returns nil if the backend can be used, or an error describing why not.
	Available() error
}
