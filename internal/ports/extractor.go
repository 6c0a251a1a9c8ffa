package ports

import (
	"context"

	"github.com/go-git/go-billy/v5"
)

// Extractor unpacks an archive, preserving its internal directory layout.
type Extractor interface {
	Extract(ctx context.Context, fs billy.Filesystem, archive, destDir string) error
}
