// Package config holds the bootstrap configuration: which steps to run and
// the artifacts and packages each installer uses.
package config

import "slices"

// Config is the root of startquantum.yaml / startquantum.toml.
type Config struct {
	// CacheDir holds downloaded installers and the session lock.
	CacheDir string `yaml:"cache_dir" toml:"cache_dir"`

	// Skip lists step IDs that are left out of the run.
	Skip []string `yaml:"skip" toml:"skip"`

	Log    LogConfig    `yaml:"log" toml:"log"`
	Conda  CondaConfig  `yaml:"conda" toml:"conda"`
	Dotnet DotnetConfig `yaml:"dotnet" toml:"dotnet"`
	VSCode VSCodeConfig `yaml:"vscode" toml:"vscode"`
}

// LogConfig configures the JSON log file.
type LogConfig struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

// Artifact overrides the installer download for the current platform.
// An empty URL keeps the built-in default.
type Artifact struct {
	URL    string `yaml:"url" toml:"url"`
	SHA256 string `yaml:"sha256" toml:"sha256"`
}

// CondaConfig configures the conda steps.
type CondaConfig struct {
	Installer   Artifact `yaml:"installer" toml:"installer"`
	Prefix      string   `yaml:"prefix" toml:"prefix"`
	Environment string   `yaml:"environment" toml:"environment"`
	Channels    []string `yaml:"channels" toml:"channels"`
	Packages    []string `yaml:"packages" toml:"packages"`
}

// DotnetConfig configures the .NET SDK steps.
type DotnetConfig struct {
	Installer        Artifact `yaml:"installer" toml:"installer"`
	InstallScript    Artifact `yaml:"install_script" toml:"install_script"`
	SDKVersion       string   `yaml:"sdk_version" toml:"sdk_version"`
	TemplatesPackage string   `yaml:"templates_package" toml:"templates_package"`
}

// VSCodeConfig configures the VS Code steps.
type VSCodeConfig struct {
	Installer  Artifact `yaml:"installer" toml:"installer"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
}

// Default values.
const (
	DefaultCondaPrefix      = "~/anaconda3"
	DefaultCondaEnvironment = "quantum"
	DefaultSDKVersion       = "3.1"
	DefaultTemplatesPackage = "Microsoft.Quantum.ProjectTemplates"
	DefaultLogLevel         = "info"
	DefaultLogMaxSizeMB     = 10
	DefaultLogMaxBackups    = 3
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		CacheDir: defaultCacheDir(),
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
		},
		Conda: CondaConfig{
			Prefix:      DefaultCondaPrefix,
			Environment: DefaultCondaEnvironment,
			Channels:    []string{"conda-forge", "quantum-engineering"},
			Packages:    []string{"qutip", "matplotlib", "qsharp", "numpy", "scipy", "notebook"},
		},
		Dotnet: DotnetConfig{
			SDKVersion:       DefaultSDKVersion,
			TemplatesPackage: DefaultTemplatesPackage,
		},
		VSCode: VSCodeConfig{
			Extensions: []string{
				"ms-python.python",
				"quantum.quantum-devkit-vscode",
				"ms-dotnettools.csharp",
			},
		},
	}
}

// applyDefaults fills zero values from Default.
func (c *Config) applyDefaults() {
	d := Default()

	if c.CacheDir == "" {
		c.CacheDir = d.CacheDir
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
	if c.Conda.Prefix == "" {
		c.Conda.Prefix = d.Conda.Prefix
	}
	if c.Conda.Environment == "" {
		c.Conda.Environment = d.Conda.Environment
	}
	if c.Conda.Channels == nil {
		c.Conda.Channels = d.Conda.Channels
	}
	if c.Conda.Packages == nil {
		c.Conda.Packages = d.Conda.Packages
	}
	if c.Dotnet.SDKVersion == "" {
		c.Dotnet.SDKVersion = d.Dotnet.SDKVersion
	}
	if c.Dotnet.TemplatesPackage == "" {
		c.Dotnet.TemplatesPackage = d.Dotnet.TemplatesPackage
	}
	if c.VSCode.Extensions == nil {
		c.VSCode.Extensions = d.VSCode.Extensions
	}
}

// Skipped reports whether the step with id is listed in Skip.
func (c *Config) Skipped(id string) bool {
	return slices.Contains(c.Skip, id)
}
