package mocks

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunner_RunReturnsQueuedResults(t *testing.T) {
	t.Parallel()

	runner := NewCommandRunner()
	runner.AddResult("conda", []string{"--version"}, ports.CommandResult{ExitCode: 1})
	runner.AddResult("conda", []string{"--version"}, ports.CommandResult{Stdout: "conda 4.10.3"})

	first, err := runner.Run(context.Background(), "conda", "--version")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ExitCode)

	second, err := runner.Run(context.Background(), "conda", "--version")
	require.NoError(t, err)
	assert.Equal(t, "conda 4.10.3", second.Stdout)

	third, err := runner.Run(context.Background(), "conda", "--version")
	require.NoError(t, err)
	assert.Equal(t, "conda 4.10.3", third.Stdout)
}

func TestCommandRunner_Errors(t *testing.T) {
	t.Parallel()

	runner := NewCommandRunner()
	boom := errors.New("boom")
	runner.AddError("code", []string{"--list-extensions"}, boom)

	_, err := runner.Run(context.Background(), "code", "--list-extensions")
	require.ErrorIs(t, err, boom)

	_, err = runner.Run(context.Background(), "dotnet", "--list-sdks")
	require.Error(t, err)
}

func TestCommandRunner_RecordsInteractiveCalls(t *testing.T) {
	t.Parallel()

	runner := NewCommandRunner()
	runner.AddResult("conda", []string{"init", "--all"}, ports.CommandResult{})

	_, err := runner.RunInteractive(context.Background(), "conda", "init", "--all")
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Interactive)
	assert.True(t, runner.Called("conda", "init", "--all"))
	assert.False(t, runner.Called("conda", "init"))

	runner.Reset()
	assert.Empty(t, runner.Calls())
}

func TestFileSystem(t *testing.T) {
	t.Parallel()

	fs := NewFileSystem()
	fs.AddFile("/opt/conda/bin/conda")
	require.NoError(t, fs.MkdirAll("/opt/conda/envs", 0o755))

	assert.True(t, fs.Exists("/opt/conda/bin/conda"))
	assert.False(t, fs.IsDir("/opt/conda/bin/conda"))
	assert.True(t, fs.IsDir("/opt/conda/envs"))

	require.NoError(t, fs.Remove("/opt/conda/bin/conda"))
	assert.False(t, fs.Exists("/opt/conda/bin/conda"))
	assert.ErrorIs(t, fs.Remove("/missing"), os.ErrNotExist)
}

func TestPrompter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("scripted answers then error", func(t *testing.T) {
		t.Parallel()
		p := NewPrompter(true, false)

		ok, err := p.Confirm(ctx, "Install Conda?", "", true)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = p.Confirm(ctx, "Install VS Code?", "", true)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = p.Confirm(ctx, "Install .NET?", "", true)
		require.ErrorIs(t, err, ErrNoAnswer)
		assert.Len(t, p.Calls(), 3)
	})

	t.Run("fallbacks", func(t *testing.T) {
		t.Parallel()
		ok, err := AlwaysYes().Confirm(ctx, "q", "", false)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = AlwaysNo().Confirm(ctx, "q", "", true)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		eof := errors.New("EOF")
		_, err := AlwaysYes().WithError(eof).Confirm(ctx, "q", "", true)
		require.ErrorIs(t, err, eof)
	})
}

func TestLogger_WithSharesEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := NewLogger()
	child := logger.With(ports.F("step", "conda"))

	logger.Info(ctx, "starting")
	child.Success(ctx, "Conda installed successfully!")

	entries := logger.Entries()
	require.Len(t, entries, 2)

	value, ok := entries[1].Field("step")
	require.True(t, ok)
	assert.Equal(t, "conda", value)

	_, ok = entries[0].Field("step")
	assert.False(t, ok)

	assert.True(t, logger.Contains(ports.LevelSuccess, "installed successfully"))
	assert.Len(t, logger.AtLevel(ports.LevelInfo), 1)
}

func TestDownloader(t *testing.T) {
	t.Parallel()

	d := NewDownloader("/tmp/dl")
	got, err := d.Download(context.Background(), ports.DownloadRequest{URL: "https://example.com/a/setup.exe"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dl/setup.exe", got)

	got, err = d.Download(context.Background(), ports.DownloadRequest{URL: "https://example.com/x", Name: "conda.sh"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dl/conda.sh", got)
	assert.Len(t, d.Requests(), 2)

	d.WithError(errors.New("offline"))
	_, err = d.Download(context.Background(), ports.DownloadRequest{URL: "https://example.com/x"})
	assert.EqualError(t, err, "offline")
}
