// Package versionutil compares tool versions reported by installers.
package versionutil

import (
	"bufio"
	"strings"

	"golang.org/x/mod/semver"
)

// Canonical turns "3.1.412" or "v3.1" into a canonical semver string ("v3.1.412", "v3.1.0").
// It returns "" for strings that are not versions.
func Canonical(version string) string {
	v := strings.TrimSpace(version)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// MatchesChannel reports whether version belongs to channel, a "major" or
// "major.minor" release line such as "3.1".
func MatchesChannel(version, channel string) bool {
	v := Canonical(version)
	c := Canonical(channel)
	if v == "" || c == "" {
		return false
	}
	if strings.Count(strings.TrimPrefix(strings.TrimSpace(channel), "v"), ".") == 0 {
		return semver.Major(v) == semver.Major(c)
	}
	return semver.MajorMinor(v) == semver.MajorMinor(c)
}

// FirstField returns the first whitespace-separated field of each non-empty line,
// the shape of `dotnet --list-sdks` and `code --list-extensions` output.
func FirstField(output string) []string {
	var fields []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) > 0 {
			fields = append(fields, parts[0])
		}
	}
	return fields
}

// Latest returns the highest version among versions, or "" if none parse.
func Latest(versions []string) string {
	best := ""
	bestCanon := ""
	for _, v := range versions {
		c := Canonical(v)
		if c == "" {
			continue
		}
		if bestCanon == "" || semver.Compare(c, bestCanon) > 0 {
			best, bestCanon = v, c
		}
	}
	return best
}

// AtLeast reports whether version is minimum or newer. Unparseable
// versions are never at least anything.
func AtLeast(version, minimum string) bool {
	v, m := Canonical(version), Canonical(minimum)
	if v == "" || m == "" {
		return false
	}
	return semver.Compare(v, m) >= 0
}
