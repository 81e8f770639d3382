package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bft-labs/sasport/internal/domain"
)

// Blob is a named in-memory input, typically an HTTP upload.
type Blob struct {
	Name string
	Data []byte
}

// ResolveDir scans dir for transport files and returns them as an ordered
// item list. Matching is case-insensitive on the .xpt extension; dotfiles
// and subdirectories are skipped. An existing but empty directory yields an
// empty list, not an error. A missing path or a non-directory yields
// domain.ErrNotFound.
func ResolveDir(dir string) ([]domain.InputItem, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	items := make([]domain.InputItem, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || !domain.HasSourceExtension(name) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, err
		}
		items = append(items, domain.InputItem{
			Name: name,
			Path: filepath.Join(dir, name),
			Size: fi.Size(),
		})
	}

	sortItems(items)
	return items, nil
}

// ResolveFiles turns an explicit list of file paths into an ordered item
// list. Every path must exist; a missing path yields domain.ErrNotFound
// before any conversion starts.
func ResolveFiles(paths []string) ([]domain.InputItem, error) {
	items := make([]domain.InputItem, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
			}
			return nil, err
		}
		if fi.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", domain.ErrNotFound, p)
		}
		items = append(items, domain.InputItem{
			Name: filepath.Base(p),
			Path: p,
			Size: fi.Size(),
		})
	}

	sortItems(items)
	return items, nil
}

// ResolveBlobs turns uploaded blobs into an ordered item list.
func ResolveBlobs(blobs []Blob) []domain.InputItem {
	items := make([]domain.InputItem, 0, len(blobs))
	for _, b := range blobs {
		items = append(items, domain.InputItem{
			Name: filepath.Base(b.Name),
			Data: b.Data,
			Size: int64(len(b.Data)),
		})
	}

	sortItems(items)
	return items
}

// sortItems orders items case-insensitively by name, with byte order as the
// tie-break so that runs over the same inputs always report identically.
func sortItems(items []domain.InputItem) {
	sort.SliceStable(items, func(i, j int) bool {
		li, lj := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if li != lj {
			return li < lj
		}
		return items[i].Name < items[j].Name
	})
}
