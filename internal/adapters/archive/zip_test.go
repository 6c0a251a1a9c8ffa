package archive

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name string
	body string
}

// writeZip stores entries in order; names ending in "/" become directories.
func writeZip(t *testing.T, fs billy.Filesystem, name string, entries []zipEntry) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if e.body != "" {
			_, err = w.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, util.WriteFile(fs, name, buf.Bytes(), 0o644))
}

func TestZipExtractorPreservesLayout(t *testing.T) {
	fs := memfs.New()
	writeZip(t, fs, "template.zip", []zipEntry{
		{name: "Starter-main/"},
		{name: "Starter-main/CMakeLists.txt", body: "project(Celeris)"},
		{name: "Starter-main/src/"},
		{name: "Starter-main/src/main.cpp", body: "int main() {}"},
		{name: "Starter-main/assets/empty/"},
		// file entry whose parent directory has no entry of its own
		{name: "Starter-main/docs/guide/intro.md", body: "# Intro"},
	})

	err := NewZipExtractor().Extract(context.Background(), fs, "template.zip", "temp_extracted")
	require.NoError(t, err)

	files := map[string]string{
		"temp_extracted/Starter-main/CMakeLists.txt":      "project(Celeris)",
		"temp_extracted/Starter-main/src/main.cpp":        "int main() {}",
		"temp_extracted/Starter-main/docs/guide/intro.md": "# Intro",
	}
	for name, want := range files {
		got, err := util.ReadFile(fs, name)
		require.NoError(t, err, name)
		assert.Equal(t, want, string(got), name)
	}

	info, err := fs.Stat("temp_extracted/Starter-main/assets/empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestZipExtractorRejectsTraversal(t *testing.T) {
	tests := []string{
		"../evil.txt",
		"Starter-main/../../evil.txt",
		"/etc/evil.txt",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			fs := memfs.New()
			writeZip(t, fs, "template.zip", []zipEntry{
				{name: "Starter-main/ok.txt", body: "ok"},
				{name: name, body: "evil"},
			})

			err := NewZipExtractor().Extract(context.Background(), fs, "template.zip", "out")
			require.ErrorIs(t, err, ErrUnsafePath)

			// entries before the failing one stay for the caller to clean up
			_, statErr := fs.Stat("out/Starter-main/ok.txt")
			assert.NoError(t, statErr)
		})
	}
}

func TestZipExtractorInvalidArchive(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "template.zip", []byte("not a zip"), 0o644))

	err := NewZipExtractor().Extract(context.Background(), fs, "template.zip", "out")
	assert.Error(t, err)
}

func TestZipExtractorMissingArchive(t *testing.T) {
	err := NewZipExtractor().Extract(context.Background(), memfs.New(), "template.zip", "out")
	assert.Error(t, err)
}

func TestZipExtractorCancelled(t *testing.T) {
	fs := memfs.New()
	writeZip(t, fs, "template.zip", []zipEntry{{name: "a.txt", body: "a"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewZipExtractor().Extract(ctx, fs, "template.zip", "out")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntryPath(t *testing.T) {
	got, err := entryPath("out", `dir\file.txt`)
	require.NoError(t, err)
	assert.Equal(t, "out/dir/file.txt", got)

	got, err = entryPath("out", "./a/./b/../c.txt")
	require.NoError(t, err)
	assert.Equal(t, "out/a/c.txt", got)
}
