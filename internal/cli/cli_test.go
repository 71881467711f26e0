package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}
	opts, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, opts)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_NothingToDo(t *testing.T) {
	out := &bytes.Buffer{}
	_, exit, err := Parse([]string{"feeds/shanghai.hcl"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Contains(t, out.String(), "FEED_PATH")
}

func TestParse_Query(t *testing.T) {
	opts, exit, err := Parse([]string{"-from", "A", "-to", "B", "-log-level", "DEBUG", "-log-format", "text", "net.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "A", opts.From)
	assert.Equal(t, "B", opts.To)
	assert.Equal(t, "net.hcl", opts.Settings.Feed)
	assert.Equal(t, "debug", opts.Settings.Log.Level)
	assert.Equal(t, "text", opts.Settings.Log.Format)
}

func TestParse_FeedFlagPrecedence(t *testing.T) {
	opts, _, err := Parse([]string{"-serve", "-feed", "a.hcl", "-f", "b.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", opts.Settings.Feed)

	opts, _, err = Parse([]string{"-serve", "-f", "b.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "b.hcl", opts.Settings.Feed)
}

func TestParse_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
feed: from-file.hcl
log:
  level: warn
server:
  port: 9000
`), 0o600))

	opts, _, err := Parse([]string{"-config", path, "-serve"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-file.hcl", opts.Settings.Feed)
	assert.Equal(t, 9000, opts.Settings.Server.Port)
	assert.Equal(t, "warn", opts.Settings.Log.Level)

	opts, _, err = Parse([]string{"-config", path, "-serve", "-port", "7000", "other.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", opts.Settings.Feed)
	assert.Equal(t, 7000, opts.Settings.Server.Port)
}

func TestParse_Remote(t *testing.T) {
	opts, exit, err := Parse([]string{"-remote", "http://localhost:8080", "-watch"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "http://localhost:8080", opts.Remote)
	assert.True(t, opts.Watch)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"--nope"}, "flag provided but not defined"},
		{"bad log format", []string{"-serve", "-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-serve", "-log-level", "loud"}, "invalid log-level"},
		{"bad port", []string{"-serve", "-port", "70000"}, "invalid config"},
		{"half query", []string{"-from", "A", "net.hcl"}, "together"},
		{"query without feed", []string{"-from", "A", "-to", "B"}, "needs a feed"},
		{"watch without remote", []string{"-watch"}, "-watch requires -remote"},
		{"remote with serve", []string{"-remote", "http://x", "-serve"}, "-remote cannot be combined"},
		{"extra arguments", []string{"-serve", "a.hcl", "b.hcl"}, "unexpected arguments: b.hcl"},
		{"missing config", []string{"-config", "/does/not/exist.yml", "-serve"}, "failed to read config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
