package ports

import (
	"context"

	"github.com/go-git/go-billy/v5"
)

// Materializer copies an unpacked template into the project directory.
type Materializer interface {
	// Materialize copies src into dst recursively, overwriting existing files.
	Materialize(ctx context.Context, fs billy.Filesystem, src, dst string) error
}
