package domain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProjectRequest describes a project to scaffold.
type ProjectRequest struct {
	Name        string
	Destination string
}

// ValidationError reports a request field that cannot be used.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const forbiddenNameChars = `<>:"|?*`

// NewProjectRequest trims the name and resolves the destination to an absolute path.
func NewProjectRequest(name, destination string) (ProjectRequest, error) {
	req := ProjectRequest{Name: strings.TrimSpace(name), Destination: destination}
	if destination != "" {
		abs, err := filepath.Abs(destination)
		if err != nil {
			return ProjectRequest{}, fmt.Errorf("failed to resolve destination: %w", err)
		}
		req.Destination = abs
	}
	return req, nil
}

// ProjectPath returns the directory the project will be created in.
func (r ProjectRequest) ProjectPath() string {
	return filepath.Join(r.Destination, r.Name)
}

// Validate checks the name and destination without touching the project path.
func (r ProjectRequest) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	if r.Destination == "" {
		return &ValidationError{Field: "destination", Reason: "no folder chosen"}
	}

	info, err := os.Stat(r.Destination)
	if errors.Is(err, os.ErrNotExist) {
		return &ValidationError{Field: "destination", Reason: fmt.Sprintf("%s does not exist", r.Destination)}
	}
	if err != nil {
		return &ValidationError{Field: "destination", Reason: err.Error()}
	}
	if !info.IsDir() {
		return &ValidationError{Field: "destination", Reason: fmt.Sprintf("%s is not a directory", r.Destination)}
	}
	return nil
}

// ValidateName reports whether name can be used as a single directory name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	case name != strings.TrimSpace(name):
		return &ValidationError{Field: "name", Reason: "must not start or end with whitespace"}
	case name == "." || name == "..":
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("%q is reserved", name)}
	case strings.ContainsAny(name, `/\`):
		return &ValidationError{Field: "name", Reason: "must not contain path separators"}
	case strings.ContainsRune(name, 0):
		return &ValidationError{Field: "name", Reason: "must not contain NUL"}
	case strings.ContainsAny(name, forbiddenNameChars):
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must not contain any of %s", forbiddenNameChars)}
	}
	return nil
}
