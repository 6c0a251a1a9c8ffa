package cli

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/lock"
	"github.com/Alazar42/CelerisProjectStarter/internal/domain"
)

func templateServer(t *testing.T, reachable bool) *httptest.Server {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"CelerisStarterProject-main/CMakeLists.txt": "project(Celeris)\n",
		"CelerisStarterProject-main/src/main.cpp":   "int main() {}\n",
	}
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		if !reachable {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
	mux.HandleFunc("/main.zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("CELERIS_ARCHIVE_URL", srv.URL+"/main.zip")
	t.Setenv("CELERIS_PROBE_URL", srv.URL+"/ping")
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	return srv
}

func executeNew(t *testing.T, args ...string) (string, error) {
	t.Helper()
	newDir, newGit, newPlain, newVerbose = ".", false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"new"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNewCreatesProject(t *testing.T) {
	templateServer(t, true)
	dest := t.TempDir()

	out, err := executeNew(t, "Foo", "--dir", dest, "--plain")
	require.NoError(t, err)

	assert.Contains(t, out, "Downloading...")
	assert.Contains(t, out, "Patching build file...")
	assert.Contains(t, out, "Project created at "+filepath.Join(dest, "Foo"))

	cmake, err := os.ReadFile(filepath.Join(dest, "Foo", "CMakeLists.txt"))
	require.NoError(t, err)
	assert.Equal(t, "project(Foo)\n", string(cmake))

	_, err = os.Stat(filepath.Join(dest, "Foo", "src", "main.cpp"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "CelerisStarterProject.zip"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewWithGit(t *testing.T) {
	templateServer(t, true)
	dest := t.TempDir()

	out, err := executeNew(t, "Foo", "--dir", dest, "--git")
	require.NoError(t, err)

	assert.Contains(t, out, "Initializing repository...")
	_, err = os.Stat(filepath.Join(dest, "Foo", ".git"))
	assert.NoError(t, err)
}

func TestNewRejectsExistingProject(t *testing.T) {
	templateServer(t, true)
	dest := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dest, "Foo"), 0o755))

	_, err := executeNew(t, "Foo", "--dir", dest)
	assert.ErrorIs(t, err, domain.ErrProjectExists)
}

func TestNewWithoutConnectivity(t *testing.T) {
	templateServer(t, false)
	dest := t.TempDir()

	_, err := executeNew(t, "Foo", "--dir", dest)
	assert.ErrorIs(t, err, domain.ErrNoConnectivity)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewRefusesWhileAnotherRunHoldsTheLock(t *testing.T) {
	templateServer(t, true)
	dataDir := filepath.Join(os.Getenv("XDG_DATA_HOME"), "celeris")

	release, err := lock.NewRunLock(dataDir).Acquire("/elsewhere/Bar")
	require.NoError(t, err)
	defer func() { _ = release() }()

	_, err = executeNew(t, "Foo", "--dir", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
}

func TestNewRequiresName(t *testing.T) {
	_, err := executeNew(t)
	assert.Error(t, err)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Cleaning up", capitalize("cleaning up"))
	assert.Equal(t, "", capitalize(""))
}
