package ports

import "github.com/go-git/go-billy/v5"

// Patcher rewrites the placeholder project name in a generated build file.
type Patcher interface {
	// Patch reports whether the file existed and was rewritten.
	Patch(fs billy.Filesystem, projectDir, file, placeholder, name string) (bool, error)
}
