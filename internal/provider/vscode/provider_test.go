package vscode_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/startquantum/internal/domain/config"
	"github.com/felixgeelhaar/startquantum/internal/domain/platform"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/host/hosttest"
	"github.com/felixgeelhaar/startquantum/internal/provider/vscode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const codePath = "/usr/bin/code"

var listExtensions = []string{"--list-extensions"}

func declaration(t *testing.T, f *hosttest.Fixture, id step.ID) step.Declaration {
	t.Helper()
	for _, d := range vscode.NewProvider(f.Host(), config.Default().VSCode).Declarations() {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("no declaration %s", id)
	return step.Declaration{}
}

func TestProvider_Extensions(t *testing.T) {
	t.Parallel()

	f := hosttest.New(platform.OSLinux)
	p := vscode.NewProvider(f.Host(), config.Default().VSCode)
	assert.Equal(t, "vscode", p.Name())
	assert.Equal(t, []string{"ms-python.python", "quantum.quantum-devkit-vscode", "ms-dotnettools.csharp"}, p.Extensions())

	f.Platform = platform.New(platform.OSLinux, "amd64", platform.EnvWSL)
	p = vscode.NewProvider(f.Host(), config.Default().VSCode)
	assert.Contains(t, p.Extensions(), vscode.RemoteWSLExtensionID)
	assert.Len(t, config.Default().VSCode.Extensions, 3, "defaults are not modified")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("on PATH", func(t *testing.T) {
		t.Parallel()
		f := hosttest.New(platform.OSLinux).OnPath("code", codePath)

		status, err := declaration(t, f, vscode.StepVSCode).Check.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, step.StatusInstalled, status)
	})

	t.Run("windows code.cmd", func(t *testing.T) {
		t.Parallel()
		f := hosttest.New(platform.OSWindows).OnPath("code.cmd", `C:\Users\ada\AppData\Local\Programs\Microsoft VS Code\bin\code.cmd`)

		status, err := declaration(t, f, vscode.StepVSCode).Check.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, step.StatusInstalled, status)
	})

	t.Run("mac app bundle", func(t *testing.T) {
		t.Parallel()
		f := hosttest.New(platform.OSDarwin)
		f.FS.AddFile("/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code")

		status, err := declaration(t, f, vscode.StepVSCode).Check.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, step.StatusInstalled, status)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		f := hosttest.New(platform.OSLinux)

		status, err := declaration(t, f, vscode.StepVSCode).Check.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, step.StatusNotInstalled, status)
	})
}

func TestInstall_Windows(t *testing.T) {
	t.Parallel()

	f := hosttest.New(platform.OSWindows)
	args := []string{"/verysilent", "/norestart", "/mergetasks=!runcode"}
	f.Runner.AddResult("/tmp/startquantum/vscode-user-setup.exe", args, ports.CommandResult{})

	require.NoError(t, declaration(t, f, vscode.StepVSCode).Install(context.Background()))
	assert.True(t, f.Runner.Called("/tmp/startquantum/vscode-user-setup.exe", args...))
	assert.Equal(t, "https://code.visualstudio.com/sha/download?build=stable&os=win32-x64-user", f.Downloader.Requests()[0].URL)
}

func TestInstall_ManualPlatforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		platform *platform.Platform
		hint     string
	}{
		{"macOS", platform.New(platform.OSDarwin, "arm64", platform.EnvNative), "brew install --cask"},
		{"ubuntu", platform.New(platform.OSLinux, "amd64", platform.EnvNative).WithDistro(platform.Distro{ID: "ubuntu", IDLike: []string{"debian"}}), ".deb"},
		{"fedora", platform.New(platform.OSLinux, "amd64", platform.EnvNative).WithDistro(platform.Distro{ID: "fedora"}), ".rpm"},
		{"wsl", platform.New(platform.OSLinux, "amd64", platform.EnvWSL), "on Windows"},
		{"other", platform.New(platform.OSLinux, "amd64", platform.EnvNative), "your distribution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := hosttest.New(platform.OSLinux)
			f.Platform = tt.platform

			err := declaration(t, f, vscode.StepVSCode).Install(context.Background())
			require.ErrorIs(t, err, vscode.ErrManualInstall)
			assert.Contains(t, err.Error(), tt.hint)
			assert.Empty(t, f.Downloader.Requests())
		})
	}
}

func TestCheckExtensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		onPath bool
		output string
		want   step.InstallStatus
	}{
		{
			name:   "all installed",
			onPath: true,
			output: "golang.go\nms-dotnettools.csharp\nMS-Python.Python\nquantum.quantum-devkit-vscode\n",
			want:   step.StatusInstalled,
		},
		{
			name:   "one missing",
			onPath: true,
			output: "ms-python.python\nms-dotnettools.csharp\n",
			want:   step.StatusNotInstalled,
		},
		{
			name: "code missing",
			want: step.StatusNotInstalled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := hosttest.New(platform.OSLinux)
			if tt.onPath {
				f.OnPath("code", codePath)
				f.Runner.AddResult(codePath, listExtensions, ports.CommandResult{Stdout: tt.output})
			}

			status, err := declaration(t, f, vscode.StepExtensions).Check.Detect(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestInstallExtensions_OnlyMissing(t *testing.T) {
	t.Parallel()

	f := hosttest.New(platform.OSLinux).OnPath("code", codePath)
	f.Runner.AddResult(codePath, listExtensions, ports.CommandResult{Stdout: "ms-python.python\n"})
	f.Runner.AddResult(codePath, []string{"--install-extension", "quantum.quantum-devkit-vscode"}, ports.CommandResult{})
	f.Runner.AddResult(codePath, []string{"--install-extension", "ms-dotnettools.csharp"}, ports.CommandResult{})

	require.NoError(t, declaration(t, f, vscode.StepExtensions).Install(context.Background()))

	assert.False(t, f.Runner.Called(codePath, "--install-extension", "ms-python.python"))
	assert.True(t, f.Runner.Called(codePath, "--install-extension", "quantum.quantum-devkit-vscode"))
	assert.True(t, f.Runner.Called(codePath, "--install-extension", "ms-dotnettools.csharp"))
	assert.True(t, f.Logger.Contains(ports.LevelInfo, "Installing extension ms-dotnettools.csharp..."))
}

func TestInstallExtensions_ContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	f := hosttest.New(platform.OSLinux).OnPath("code", codePath)
	f.Runner.AddResult(codePath, listExtensions, ports.CommandResult{})
	f.Runner.AddResult(codePath, []string{"--install-extension", "ms-python.python"}, ports.CommandResult{})
	f.Runner.AddResult(codePath, []string{"--install-extension", "quantum.quantum-devkit-vscode"}, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "Extension 'quantum.quantum-devkit-vscode' not found.",
	})
	f.Runner.AddResult(codePath, []string{"--install-extension", "ms-dotnettools.csharp"}, ports.CommandResult{})

	err := declaration(t, f, vscode.StepExtensions).Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extension quantum.quantum-devkit-vscode")
	assert.True(t, f.Runner.Called(codePath, "--install-extension", "ms-dotnettools.csharp"))
}

func TestInstallExtensions_CodeMissing(t *testing.T) {
	t.Parallel()

	f := hosttest.New(platform.OSLinux)
	err := declaration(t, f, vscode.StepExtensions).Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find code")
}
