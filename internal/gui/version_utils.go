package gui

import (
	"errors"
	"strings"

	"golang.org/x/mod/semver"
)

// normalize adds a "v" prefix to the version string if it's missing.
// The semver package strictly requires the "v" prefix (e.g., "v1.2.3").
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// parseVersion reports whether version is a valid semantic version
// (a missing "v" prefix is added first), for example to reject "dev".
// On success it returns []int{0}; the slice carries no version parts.
func parseVersion(version string) ([]int, error) {
	norm := normalize(version)
	if !semver.IsValid(norm) {
		return nil, errors.New("invalid semantic version")
	}
	return []int{0}, nil
}

// compareVersions compares two semantic version strings using golang.org/x/mod/semver.
// Returns 1 if v1 > v2, -1 if v1 < v2, and 0 if equal.
// Returns error if parsing fails (invalid semver).
func compareVersions(v1, v2 string) (int, error) {
	v1Norm := normalize(v1)
	v2Norm := normalize(v2)

	if !semver.IsValid(v1Norm) {
		return 0, errors.New("invalid version: " + v1)
	}
	if !semver.IsValid(v2Norm) {
		return 0, errors.New("invalid version: " + v2)
	}

	return semver.Compare(v1Norm, v2Norm), nil
}
