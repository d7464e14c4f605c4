package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// KnownSteps are the step IDs that may appear in skip lists and --only.
var KnownSteps = []string{
	"conda",
	"conda:shell-init",
	"conda:env",
	"dotnet:sdk",
	"dotnet:templates",
	"vscode",
	"vscode:extensions",
}

var (
	envNamePattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	extensionPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*\.[A-Za-z0-9][A-Za-z0-9.-]*$`)
	sha256Pattern    = regexp.MustCompile(`^[A-Fa-f0-9]{64}$`)

	validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
)

// Validate checks the configuration and returns an *ErrorList of every problem found.
func (c *Config) Validate() error {
	errs := NewErrorList()

	for i, id := range c.Skip {
		if !IsKnownStep(id) {
			errs.AddValidation(fmt.Sprintf("skip[%d]", i),
				fmt.Sprintf("unknown step %q", id),
				"Known steps: "+strings.Join(KnownSteps, ", "))
		}
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs.AddValidation("log.level", fmt.Sprintf("unknown level %q", c.Log.Level),
			"Use one of debug, info, warn or error.")
	}
	if c.Log.MaxSizeMB < 0 {
		errs.AddValidation("log.max_size_mb", "must not be negative", "")
	}

	validateArtifact(errs, "conda.installer", c.Conda.Installer)
	validateArtifact(errs, "dotnet.installer", c.Dotnet.Installer)
	validateArtifact(errs, "dotnet.install_script", c.Dotnet.InstallScript)
	validateArtifact(errs, "vscode.installer", c.VSCode.Installer)

	if !envNamePattern.MatchString(c.Conda.Environment) {
		errs.AddValidation("conda.environment", fmt.Sprintf("invalid environment name %q", c.Conda.Environment),
			"Use letters, digits, '.', '_' or '-'.")
	}
	if len(c.Conda.Packages) == 0 {
		errs.AddValidation("conda.packages", "at least one package is required",
			"List packages such as qsharp and notebook, or skip the conda:env step.")
	}
	for i, ch := range c.Conda.Channels {
		if strings.TrimSpace(ch) == "" {
			errs.AddValidation(fmt.Sprintf("conda.channels[%d]", i), "channel must not be empty", "")
		}
	}

	if !validChannel(c.Dotnet.SDKVersion) {
		errs.AddValidation("dotnet.sdk_version", fmt.Sprintf("invalid SDK channel %q", c.Dotnet.SDKVersion),
			`Use a major or major.minor version such as "3.1" or "6.0".`)
	}

	for i, ext := range c.VSCode.Extensions {
		if !extensionPattern.MatchString(ext) {
			errs.AddValidation(fmt.Sprintf("vscode.extensions[%d]", i),
				fmt.Sprintf("invalid extension id %q", ext),
				"Extension IDs have the form publisher.name, for example ms-python.python.")
		}
	}

	return errs.AsError()
}

// IsKnownStep reports whether id names a declared step.
func IsKnownStep(id string) bool {
	for _, known := range KnownSteps {
		if known == id {
			return true
		}
	}
	return false
}

func validateArtifact(errs *ErrorList, field string, a Artifact) {
	if a.URL != "" {
		u, err := url.Parse(a.URL)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			errs.AddValidation(field+".url", fmt.Sprintf("invalid URL %q", a.URL), "Use an absolute http(s) URL.")
		}
	}
	if a.SHA256 != "" && !sha256Pattern.MatchString(a.SHA256) {
		errs.AddValidation(field+".sha256", "must be a 64 character hex digest", "")
	}
}

func validChannel(channel string) bool {
	c := strings.TrimPrefix(strings.TrimSpace(channel), "v")
	if c == "" || strings.Count(c, ".") > 1 {
		return false
	}
	return semver.IsValid("v" + c)
}
