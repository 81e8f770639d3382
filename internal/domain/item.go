package domain

import (
	"path/filepath"
	"strings"
)

// TargetExtension is the extension of every converted dataset.
const TargetExtension = ".sas7bdat"

// SourceExtension is the extension of transport files accepted for conversion.
// Matching is case-insensitive.
const SourceExtension = ".xpt"

// InputItem is one transport file awaiting conversion.
// Exactly one of Path or Data is set: Path for files resolved from a
// directory, Data for uploaded blobs that have no filesystem identity yet.
// An item is immutable once resolved and consumed exactly once per batch.
type InputItem struct {
	// Name is the original file name, used to derive the output name.
	Name string

	// Path is the filesystem location of the transport file, if any.
	Path string

	// Data holds the raw transport file bytes for in-memory items.
	Data []byte

	// Size is the item's length in bytes.
	Size int64
}

// InMemory reports whether the item carries its bytes rather than a path.
func (it InputItem) InMemory() bool {
	return it.Path == ""
}

// OutputName returns the item's base name with its extension replaced by
// the target extension.
func (it InputItem) OutputName() string {
	base := filepath.Base(it.Name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + TargetExtension
}

// HasSourceExtension reports whether name carries the transport extension,
// compared case-insensitively.
func HasSourceExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), SourceExtension)
}
