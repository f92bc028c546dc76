// Package osufile holds the parts of the beatmap file model shared between
// section codecs: the format version with its per-version grammar policy, the
// 2D position type, small field primitives and the line-indexed error wrapper.
package osufile

import "fmt"

// Version is the file format version from the "osu file format vN" header.
type Version = int

const (
	// MinVersion is the oldest file format version this codec understands.
	MinVersion Version = 3
	// LatestVersion is the newest known file format version.
	LatestVersion Version = 14
)

// OldVersionTimeOffset is the fixed millisecond compatibility constant added
// to time fields on parse and subtracted on serialize for old-format versions.
const OldVersionTimeOffset = 24

// Policy captures every version-sensitive grammar decision in one place so
// parser and serializer consult the same table and stay symmetric.
type Policy struct {
	// TimeOffset is added to event times on parse and subtracted on
	// serialize. Zero outside the old-format range.
	TimeOffset int
	// MaterializePosition forces an absent normal-event position to an
	// explicit (0,0) that is always printed back.
	MaterializePosition bool
	// LegacyEnumSpelling selects numeric codes over named identifiers when
	// rendering layer and origin fields.
	LegacyEnumSpelling bool
	// ColourEventRepresentable reports whether a colour transformation
	// event has a textual form at this version.
	ColourEventRepresentable bool
}

// PolicyFor returns the grammar policy for a format version.
func PolicyFor(version Version) Policy {
	p := Policy{
		MaterializePosition:      version >= LatestVersion,
		LegacyEnumSpelling:       version < 6,
		ColourEventRepresentable: version < 14,
	}
	if version >= 3 && version <= 4 {
		p.TimeOffset = OldVersionTimeOffset
	}
	return p
}

// CheckVersion validates that a version is within the supported range.
func CheckVersion(version Version) error {
	if version < MinVersion || version > LatestVersion {
		return fmt.Errorf("unsupported file format version %d (supported %d..%d)", version, MinVersion, LatestVersion)
	}
	return nil
}

// ToParsedTime applies the legacy offset to a textual time value.
func (p Policy) ToParsedTime(t int) int { return t + p.TimeOffset }

// ToRenderedTime removes the legacy offset before rendering a time value.
func (p Policy) ToRenderedTime(t int) int { return t - p.TimeOffset }
