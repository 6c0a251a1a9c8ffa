package ports

import (
	"context"

	"github.com/go-git/go-billy/v5"
)

// ProgressFunc receives the cumulative number of bytes written so far.
type ProgressFunc func(total int64)

// Downloader streams a remote archive into a file.
type Downloader interface {
	// Download writes the body of url to dst, truncating it, and returns the byte count.
	// A partially written dst is left in place on failure.
	Download(ctx context.Context, fs billy.Filesystem, url, dst string, onProgress ProgressFunc) (int64, error)
}
