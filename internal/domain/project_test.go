package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"simple", "Foo", false},
		{"with dash and digits", "my-game-2", false},
		{"with inner space", "My Game", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"leading space", " Foo", true},
		{"dot", ".", true},
		{"dot dot", "..", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"nul", "a\x00b", true},
		{"colon", "a:b", true},
		{"star", "a*", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "name", vErr.Field)
		})
	}
}

func TestProjectRequestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name      string
		req       ProjectRequest
		wantField string
	}{
		{"valid", ProjectRequest{Name: "Foo", Destination: dir}, ""},
		{"empty name", ProjectRequest{Name: "", Destination: dir}, "name"},
		{"no destination", ProjectRequest{Name: "Foo"}, "destination"},
		{"missing destination", ProjectRequest{Name: "Foo", Destination: filepath.Join(dir, "nope")}, "destination"},
		{"destination is file", ProjectRequest{Name: "Foo", Destination: file}, "destination"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "want ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestNewProjectRequest(t *testing.T) {
	req, err := NewProjectRequest("  Foo ", ".")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, "Foo", req.Name)
	assert.Equal(t, wd, req.Destination)
	assert.Equal(t, filepath.Join(wd, "Foo"), req.ProjectPath())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "downloading", StageDownloading.String())
	assert.Equal(t, "unknown", Stage(99).String())
	assert.True(t, StageFailed.Terminal())
	assert.True(t, StageSucceeded.Terminal())
	assert.False(t, StageCleaningUp.Terminal())
}
