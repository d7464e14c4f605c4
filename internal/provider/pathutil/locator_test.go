package pathutil

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/startquantum/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var condaSpec = ToolSpec{
	Commands: []string{"conda"},
	EnvVar:   "CONDA_EXE",
	WindowsPaths: []string{
		`~/Anaconda3/Scripts/conda.exe`,
		`$APPDATA/Anaconda3/Scripts/conda.exe`,
		`C:/Anaconda3/Scripts/conda.exe`,
	},
	LinuxPaths: []string{"~/anaconda3/bin/conda"},
}

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func notOnPath(string) (string, error) {
	return "", exec.ErrNotFound
}

func TestLocator_EnvOverrideWins(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile("/opt/custom/conda")

	l := NewLocator(fs,
		WithGOOS("linux"),
		WithHome("/home/ada"),
		WithEnv(env(map[string]string{"CONDA_EXE": "/opt/custom/conda"})),
		WithLookPath(func(string) (string, error) { return "/usr/bin/conda", nil }),
	)

	loc, ok := l.Locate(condaSpec)
	require.True(t, ok)
	assert.Equal(t, Location{Path: "/opt/custom/conda", Source: SourceEnv}, loc)
}

func TestLocator_EnvOverrideMustExist(t *testing.T) {
	t.Parallel()

	l := NewLocator(mocks.NewFileSystem(),
		WithGOOS("linux"),
		WithEnv(env(map[string]string{"CONDA_EXE": "/gone/conda"})),
		WithLookPath(func(string) (string, error) { return "/usr/bin/conda", nil }),
	)

	loc, ok := l.Locate(condaSpec)
	require.True(t, ok)
	assert.Equal(t, SourcePath, loc.Source)
	assert.Equal(t, "/usr/bin/conda", loc.Path)
}

func TestLocator_PathLookupOrder(t *testing.T) {
	t.Parallel()

	var asked []string
	l := NewLocator(mocks.NewFileSystem(),
		WithGOOS("windows"),
		WithEnv(env(nil)),
		WithLookPath(func(name string) (string, error) {
			asked = append(asked, name)
			if name == "code" {
				return `C:\Users\ada\AppData\Local\Programs\Microsoft VS Code\bin\code`, nil
			}
			return "", errors.New("not found")
		}),
	)

	path, ok := l.Find(ToolSpec{Commands: []string{"code.cmd", "code"}})
	require.True(t, ok)
	assert.Contains(t, path, "Microsoft VS Code")
	assert.Equal(t, []string{"code.cmd", "code"}, asked)
}

func TestLocator_WindowsFallbacks(t *testing.T) {
	t.Parallel()

	home := filepath.Join("C:", "Users", "ada")
	appData := filepath.Join(home, "AppData", "Roaming")

	t.Run("appdata", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()
		want := appData + "/Anaconda3/Scripts/conda.exe"
		fs.AddFile(want)

		l := NewLocator(fs, WithGOOS("windows"), WithHome(home),
			WithEnv(env(map[string]string{"APPDATA": appData})), WithLookPath(notOnPath))

		loc, ok := l.Locate(condaSpec)
		require.True(t, ok)
		assert.Equal(t, Location{Path: want, Source: SourceFallback}, loc)
	})

	t.Run("home first", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()
		homeConda := filepath.Join(home, "Anaconda3/Scripts/conda.exe")
		fs.AddFile(homeConda)
		fs.AddFile("C:/Anaconda3/Scripts/conda.exe")

		l := NewLocator(fs, WithGOOS("windows"), WithHome(home), WithEnv(env(nil)), WithLookPath(notOnPath))

		path, ok := l.Find(condaSpec)
		require.True(t, ok)
		assert.Equal(t, homeConda, path)
	})

	t.Run("unset variable skipped", func(t *testing.T) {
		t.Parallel()
		l := NewLocator(mocks.NewFileSystem(), WithGOOS("windows"), WithHome(home), WithEnv(env(nil)))

		fallbacks := l.Fallbacks(condaSpec)
		assert.Equal(t, []string{
			filepath.Join(home, "Anaconda3/Scripts/conda.exe"),
			"C:/Anaconda3/Scripts/conda.exe",
		}, fallbacks)
	})
}

func TestLocator_MacOSHasNoFallbacks(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile("/home/ada/anaconda3/bin/conda")

	l := NewLocator(fs, WithGOOS("darwin"), WithHome("/home/ada"), WithEnv(env(nil)), WithLookPath(notOnPath))

	_, ok := l.Find(condaSpec)
	assert.False(t, ok)
}

func TestLocator_LinuxFallback(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile("/home/ada/anaconda3/bin/conda")

	l := NewLocator(fs, WithGOOS("linux"), WithHome("/home/ada"), WithEnv(env(nil)), WithLookPath(notOnPath))

	path, ok := l.Find(condaSpec)
	require.True(t, ok)
	assert.Equal(t, "/home/ada/anaconda3/bin/conda", path)
}

func TestLocator_DirectoriesDoNotMatch(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddDir("/home/ada/anaconda3/bin/conda")

	l := NewLocator(fs, WithGOOS("linux"), WithHome("/home/ada"), WithEnv(env(nil)), WithLookPath(notOnPath))

	_, ok := l.Find(condaSpec)
	assert.False(t, ok)
}
