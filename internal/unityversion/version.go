// Package unityversion compares Unity editor versions against feature
// thresholds and supplies the current engine version to the rest of symhook.
package unityversion

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// NewBuildBackendThreshold is the first Unity version that caches build output
// under Library/Bee instead of Temp.
const NewBuildBackendThreshold = "2021.2"

// Comparison is the outcome of comparing a version against a threshold.
type Comparison int

const (
	// Older means the version is strictly below the threshold.
	Older Comparison = iota
	// EqualOrNewer means the version is at or above the threshold.
	EqualOrNewer
)

// String returns the string representation of the comparison.
func (c Comparison) String() string {
	switch c {
	case Older:
		return "older"
	case EqualOrNewer:
		return "equal-or-newer"
	default:
		return "unknown"
	}
}

// Unity versions look like 2021.3.5f1 or 2022.1.0b3. The release-type suffix
// does not take part in threshold comparisons.
var unityVersionRe = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?`)

// Parse extracts the numeric part of a Unity version string.
func Parse(raw string) (*goversion.Version, error) {
	m := unityVersionRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return nil, fmt.Errorf("invalid unity version %q", raw)
	}
	numeric := m[1] + "." + m[2]
	if m[3] != "" {
		numeric += "." + m[3]
	}
	return goversion.NewVersion(numeric)
}

// Compare reports whether current is older than threshold or not.
func Compare(current, threshold string) (Comparison, error) {
	cur, err := Parse(current)
	if err != nil {
		return Older, err
	}
	thr, err := Parse(threshold)
	if err != nil {
		return Older, err
	}
	if cur.LessThan(thr) {
		return Older, nil
	}
	return EqualOrNewer, nil
}

// IsNewerOrEqual is a convenience wrapper around Compare.
func IsNewerOrEqual(current, threshold string) (bool, error) {
	c, err := Compare(current, threshold)
	if err != nil {
		return false, err
	}
	return c == EqualOrNewer, nil
}

// UsesNewBuildBackend reports whether the engine version at p builds into
// Library/Bee.
func UsesNewBuildBackend(p Provider) (bool, error) {
	v, err := p.EngineVersion()
	if err != nil {
		return false, err
	}
	return IsNewerOrEqual(v, NewBuildBackendThreshold)
}
