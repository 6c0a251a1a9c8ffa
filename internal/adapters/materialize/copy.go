package materialize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
)

// TreeCopier copies a directory tree depth-first.
type TreeCopier struct{}

// NewTreeCopier creates a new tree copier.
func NewTreeCopier() *TreeCopier {
	return &TreeCopier{}
}

// Materialize copies every file and directory under src into dst.
// Existing files in dst are overwritten.
func (c *TreeCopier) Materialize(ctx context.Context, fs billy.Filesystem, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}
	return copyDir(ctx, fs, src, dst)
}

func copyDir(ctx context.Context, fs billy.Filesystem, src, dst string) error {
	if err := fs.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		from := path.Join(src, entry.Name())
		to := path.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(ctx, fs, from, to); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(fs, from, to, entry.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to copy %s: %w", from, err)
		}
	}
	return nil
}

func copyFile(fs billy.Filesystem, src, dst string, perm os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if perm == 0 {
		perm = 0o644
	}
	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
