package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/startquantum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_EmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "quantum", cfg.Conda.Environment)
	assert.Equal(t, "3.1", cfg.Dotnet.SDKVersion)
	assert.Len(t, cfg.VSCode.Extensions, 3)
}

func TestLoader_YAML(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFixtureToDir(t, t.TempDir(), "startquantum.yaml", "startquantum.yaml")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "quantum", cfg.Conda.Environment)
	assert.Equal(t, []string{"conda-forge", "quantum-engineering"}, cfg.Conda.Channels)
	assert.Equal(t, "Microsoft.Quantum.ProjectTemplates", cfg.Dotnet.TemplatesPackage)
	assert.Contains(t, cfg.VSCode.Extensions, "quantum.quantum-devkit-vscode")
	assert.NotEmpty(t, cfg.CacheDir, "defaults fill unset keys")
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoader_TOML(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFixtureToDir(t, t.TempDir(), "startquantum.toml", "startquantum.toml")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qdev", cfg.Conda.Environment)
	assert.Equal(t, []string{"qsharp", "notebook"}, cfg.Conda.Packages)
	assert.Equal(t, "6.0", cfg.Dotnet.SDKVersion)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Skipped("vscode:extensions"))
	assert.False(t, cfg.Skipped("vscode"))
	assert.Equal(t, DefaultTemplatesPackage, cfg.Dotnet.TemplatesPackage)
}

func TestLoader_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, IsUserError(err, ErrCodeConfigNotFound))
}

func TestLoader_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{name: "yaml unknown key", file: "startquantum.yaml", content: "julia:\n  version: 1\n", contains: "unknown configuration key"},
		{name: "yaml bad list", file: "startquantum.yaml", content: "skip: conda\n", contains: "expected a list"},
		{name: "yaml syntax", file: "startquantum.yaml", content: "conda:\n\t- broken", contains: ""},
		{name: "toml syntax", file: "startquantum.toml", content: "[conda\nenvironment = 1", contains: "invalid TOML syntax"},
		{name: "toml unknown key", file: "startquantum.toml", content: "[julia]\nversion = 1\n", contains: "unknown configuration key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := testutil.WriteTempFile(t, t.TempDir(), tt.file, tt.content)

			_, err := NewLoader().Load(path)
			require.Error(t, err)

			ue := GetUserError(err)
			require.NotNil(t, ue)
			assert.Equal(t, ErrCodeConfigParse, ue.Code)
			assert.Contains(t, ue.Message, tt.contains)
			assert.NotEmpty(t, ue.Suggestion)
		})
	}
}

func TestLoader_EmptyFile(t *testing.T) {
	t.Parallel()

	path := testutil.WriteTempFile(t, t.TempDir(), "startquantum.yaml", "")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCondaEnvironment, cfg.Conda.Environment)
}

func TestLoader_ValidationRuns(t *testing.T) {
	t.Parallel()

	path := testutil.WriteTempFile(t, t.TempDir(), "startquantum.yaml", "skip: [julia]\n")

	_, err := NewLoader().Load(path)
	require.Error(t, err)

	var list *ErrorList
	require.ErrorAs(t, err, &list)
	assert.Equal(t, 1, list.Len())
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Empty(t, Discover(dir))

	testutil.WriteTempFile(t, dir, "startquantum.toml", "")
	assert.Equal(t, filepath.Join(dir, "startquantum.toml"), Discover(dir))

	testutil.WriteTempFile(t, dir, "startquantum.yaml", "")
	assert.Equal(t, filepath.Join(dir, "startquantum.yaml"), Discover(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "startquantum.yml"), 0o755))
	assert.Equal(t, filepath.Join(dir, "startquantum.yaml"), Discover(dir))
}
