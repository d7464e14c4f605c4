// Package platform provides platform detection used to pick installers.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"gopkg.in/ini.v1"
)

// OS represents the operating system type.
type OS string

const (
	// OSDarwin is macOS.
	OSDarwin OS = "darwin"
	// OSLinux is Linux (native or WSL).
	OSLinux OS = "linux"
	// OSWindows is Windows.
	OSWindows OS = "windows"
	// OSUnknown is an unsupported OS.
	OSUnknown OS = "unknown"
)

// Environment represents the execution environment.
type Environment string

const (
	// EnvNative is a native OS environment.
	EnvNative Environment = "native"
	// EnvWSL is Windows Subsystem for Linux.
	EnvWSL Environment = "wsl"
	// EnvDocker is running inside a container.
	EnvDocker Environment = "docker"
)

// Distro identifies a Linux distribution from /etc/os-release.
type Distro struct {
	ID        string
	IDLike    []string
	VersionID string
	Name      string
}

// Is reports whether the distro is id or derives from it.
func (d Distro) Is(id string) bool {
	if d.ID == id {
		return true
	}
	for _, like := range d.IDLike {
		if like == id {
			return true
		}
	}
	return false
}

// Platform contains detected platform information.
type Platform struct {
	os          OS
	arch        string
	environment Environment
	distro      Distro
}

var (
	detected     *Platform
	detectOnce   sync.Once
	testPlatform *Platform // For testing
)

// Detect returns the current platform information.
// Results are cached after the first call.
func Detect() *Platform {
	if testPlatform != nil {
		return testPlatform
	}

	detectOnce.Do(func() {
		detected = DetectAt(runtime.GOOS, runtime.GOARCH, "/")
	})
	return detected
}

// SetTestPlatform sets a mock platform for testing.
// Pass nil to reset to actual detection.
func SetTestPlatform(p *Platform) {
	testPlatform = p
}

// DetectAt detects the platform for goos/goarch, reading Linux system
// files below root.
func DetectAt(goos, goarch, root string) *Platform {
	p := &Platform{
		arch:        goarch,
		environment: EnvNative,
	}

	switch goos {
	case "darwin":
		p.os = OSDarwin
	case "linux":
		p.os = OSLinux
		p.distro = readOSRelease(filepath.Join(root, "etc", "os-release"))
		switch {
		case isWSL(filepath.Join(root, "proc", "version")):
			p.environment = EnvWSL
		case fileExists(filepath.Join(root, ".dockerenv")):
			p.environment = EnvDocker
		}
	case "windows":
		p.os = OSWindows
	default:
		p.os = OSUnknown
	}

	return p
}

// readOSRelease parses the KEY=value file with ini, which handles quoting.
func readOSRelease(path string) Distro {
	cfg, err := ini.Load(path)
	if err != nil {
		return Distro{}
	}

	section := cfg.Section("")
	d := Distro{
		ID:        strings.ToLower(section.Key("ID").String()),
		VersionID: section.Key("VERSION_ID").String(),
		Name:      section.Key("NAME").String(),
	}
	if like := section.Key("ID_LIKE").String(); like != "" {
		d.IDLike = strings.Fields(strings.ToLower(like))
	}
	return d
}

func isWSL(procVersion string) bool {
	data, err := os.ReadFile(procVersion)
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// OS returns the operating system.
func (p *Platform) OS() OS {
	return p.os
}

// Arch returns the architecture.
func (p *Platform) Arch() string {
	return p.arch
}

// Environment returns the execution environment.
func (p *Platform) Environment() Environment {
	return p.environment
}

// Distro returns the Linux distribution (zero elsewhere).
func (p *Platform) Distro() Distro {
	return p.distro
}

// IsWindows returns true if running on Windows (native).
func (p *Platform) IsWindows() bool {
	return p.os == OSWindows
}

// IsMacOS returns true if running on macOS.
func (p *Platform) IsMacOS() bool {
	return p.os == OSDarwin
}

// IsLinux returns true if running on Linux (native or WSL).
func (p *Platform) IsLinux() bool {
	return p.os == OSLinux
}

// IsWSL returns true if running in WSL.
func (p *Platform) IsWSL() bool {
	return p.environment == EnvWSL
}

// String returns a human-readable description.
func (p *Platform) String() string {
	parts := []string{string(p.os), p.arch}

	if p.environment != EnvNative {
		parts = append(parts, string(p.environment))
	}
	if p.distro.ID != "" {
		parts = append(parts, p.distro.ID)
	}

	return strings.Join(parts, "/")
}

// New creates a Platform with specified values (for testing).
func New(os OS, arch string, env Environment) *Platform {
	return &Platform{
		os:          os,
		arch:        arch,
		environment: env,
	}
}

// WithDistro returns a copy of p with distro set.
func (p *Platform) WithDistro(d Distro) *Platform {
	cp := *p
	cp.distro = d
	return &cp
}
