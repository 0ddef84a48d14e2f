package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/spade/internal/config"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "spade", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, expected := range []string{"build", "serve", "version"} {
		assert.True(t, registered[expected], "expected command %s to be registered", expected)
	}
}

func TestFlagKeysAreDefined(t *testing.T) {
	for flag := range flagKeys {
		found := rootCmd.PersistentFlags().Lookup(flag) != nil ||
			buildCmd.Flags().Lookup(flag) != nil ||
			serveCmd.Flags().Lookup(flag) != nil
		assert.True(t, found, "flag %s is not defined on any command", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "1.0.0-test")
	assert.Contains(t, out.String(), "abc123")
}

func TestSiteHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes", "tomato"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes", "tomato", "index.html"), []byte("tomato"), 0o644))

	handler := newSiteHandler(config.Config{Destination: dir})

	tests := []struct {
		name string
		path string
		code int
		body string
	}{
		{name: "page", path: "/notes/tomato/", code: http.StatusOK, body: "tomato"},
		{name: "directory without index", path: "/empty/", code: http.StatusNotFound},
		{name: "missing file", path: "/nope.html", code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
				assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestSiteHandlerMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newSiteHandler(config.Config{Destination: t.TempDir()}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunBuildProcessValidates(t *testing.T) {
	err := runBuildProcess(buildCmd, config.Config{})
	assert.ErrorIs(t, err, config.ErrMissingSetting)
}
