package materialize

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeCopierCopiesTree(t *testing.T) {
	fs := memfs.New()
	src := map[string]string{
		"tmp/Starter-main/CMakeLists.txt":        "project(Celeris)",
		"tmp/Starter-main/src/main.cpp":          "int main() {}",
		"tmp/Starter-main/src/engine/render.cpp": "void render() {}",
		"tmp/Starter-main/.gitignore":            "build/",
	}
	for name, body := range src {
		require.NoError(t, util.WriteFile(fs, name, []byte(body), 0o644))
	}
	require.NoError(t, fs.MkdirAll("tmp/Starter-main/assets", 0o755))

	err := NewTreeCopier().Materialize(context.Background(), fs, "tmp/Starter-main", "Foo")
	require.NoError(t, err)

	for name, want := range src {
		got, err := util.ReadFile(fs, "Foo"+name[len("tmp/Starter-main"):])
		require.NoError(t, err, name)
		assert.Equal(t, want, string(got))
	}

	info, err := fs.Stat("Foo/assets")
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "empty directories are copied too")
}

func TestTreeCopierOverwritesExistingFiles(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "src/a.txt", []byte("new"), 0o644))
	require.NoError(t, util.WriteFile(fs, "dst/a.txt", []byte("old content"), 0o644))
	require.NoError(t, util.WriteFile(fs, "dst/keep.txt", []byte("keep"), 0o644))

	require.NoError(t, NewTreeCopier().Materialize(context.Background(), fs, "src", "dst"))

	got, err := util.ReadFile(fs, "dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	got, err = util.ReadFile(fs, "dst/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(got))
}

func TestTreeCopierMissingSource(t *testing.T) {
	err := NewTreeCopier().Materialize(context.Background(), memfs.New(), "nope", "dst")
	assert.Error(t, err)
}

func TestTreeCopierSourceIsFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "file.txt", []byte("x"), 0o644))

	err := NewTreeCopier().Materialize(context.Background(), fs, "file.txt", "dst")
	assert.Error(t, err)
}

func TestTreeCopierCancelled(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "src/a.txt", []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTreeCopier().Materialize(ctx, fs, "src", "dst")
	assert.ErrorIs(t, err, context.Canceled)
}
