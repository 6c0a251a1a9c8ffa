package patch

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// NameReplacer replaces the template's placeholder project name with a literal substitution.
type NameReplacer struct{}

// NewNameReplacer creates a new name replacer.
func NewNameReplacer() *NameReplacer {
	return &NameReplacer{}
}

// Patch rewrites projectDir/file in place. A missing file is not an error.
func (r *NameReplacer) Patch(fs billy.Filesystem, projectDir, file, placeholder, name string) (bool, error) {
	target := path.Join(projectDir, file)

	info, err := fs.Stat(target)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", target, err)
	}

	content, err := util.ReadFile(fs, target)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", target, err)
	}

	patched := strings.ReplaceAll(string(content), placeholder, name)
	if err := writeFileAtomic(fs, target, []byte(patched), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", target, err)
	}
	return true, nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it over target.
func writeFileAtomic(fs billy.Filesystem, target string, data []byte, perm os.FileMode) error {
	tmp, err := util.TempFile(fs, path.Dir(target), ".celeris-tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if ch, ok := fs.(billy.Change); ok && perm != 0 {
		if err := ch.Chmod(tmpName, perm); err != nil {
			return err
		}
	}
	if err := fs.Rename(tmpName, target); err != nil {
		return err
	}

	success = true
	return nil
}
