// Package version provides the daemon version and the register layout
// version, and the embedded layout manifests.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Daemon is the version of the control daemon.
const Daemon = "0.4.0"

// Current is the register layout version implemented by this module.
const Current = "1.0"

// LayoutVersion represents a parsed "major.minor" layout version.
type LayoutVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (LayoutVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return LayoutVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return LayoutVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return LayoutVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return LayoutVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v LayoutVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
// Segment offsets and sizes only change with the major version.
func (v LayoutVersion) Compatible(other LayoutVersion) bool {
	return v.Major == other.Major
}

// CompatibleWithCurrent reports whether images recorded under layout
// version s can be used by this module.
func CompatibleWithCurrent(s string) (bool, error) {
	v, err := Parse(s)
	if err != nil {
		return false, err
	}
	current, _ := Parse(Current)
	return current.Compatible(v), nil
}

// UserAgent returns the daemon identification used in traces and logs.
func UserAgent() string {
	return fmt.Sprintf("fwctl/%s layout/%s", Daemon, Current)
}
