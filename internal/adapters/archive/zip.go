package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/klauspost/compress/zip"
)

// ErrUnsafePath marks an entry that would be written outside the extraction root.
var ErrUnsafePath = errors.New("archive entry escapes extraction root")

// ZipExtractor unpacks zip archives.
type ZipExtractor struct{}

// NewZipExtractor creates a new zip extractor.
func NewZipExtractor() *ZipExtractor {
	return &ZipExtractor{}
}

// Extract unpacks archive into destDir, one entry at a time in stored order.
// The first failing entry aborts extraction and leaves what was written so far.
func (e *ZipExtractor) Extract(ctx context.Context, fs billy.Filesystem, archive, destDir string) error {
	f, err := fs.Open(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := fs.Stat(archive)
	if err != nil {
		return fmt.Errorf("failed to stat archive: %w", err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	if err := fs.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractEntry(fs, entry, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
	}
	return nil
}

func extractEntry(fs billy.Filesystem, entry *zip.File, destDir string) error {
	target, err := entryPath(destDir, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		return fs.MkdirAll(target, 0o755)
	}

	if err := fs.MkdirAll(path.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	perm := entry.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	dst, err := fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// entryPath maps an archive entry name onto destDir, rejecting absolute and
// parent-relative names. Zip names always use forward slashes.
func entryPath(destDir, name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	cleaned := path.Clean(name)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return path.Join(destDir, cleaned), nil
}
