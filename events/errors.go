// Package events parses and serializes the [Events] section of a beatmap
// file: timeline shorthand events, comments and storyboard objects with
// their indentation-nested command scripts. Every grammar decision that
// changed across file format versions is resolved through the shared
// osufile.Policy table so parse and render stay symmetric.
package events

import (
	"errors"
	"fmt"
)

// ErrStoryboardCmdWithNoSprite reports an indented command line with no
// preceding storyboard object to own it.
var ErrStoryboardCmdWithNoSprite = errors.New("storyboard command has no sprite or animation to attach to")

// UnknownEventTypeError reports a normal-event header token outside the
// known set. Callers implementing lenient parsing can match on it to skip
// unrecognized lines while still failing on malformed known events.
type UnknownEventTypeError struct {
	Token string
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("Unknown event type %q", e.Token)
}

// NotRepresentableError reports serialization of an event that has no
// textual form at the requested version.
type NotRepresentableError struct {
	Index   int
	Version int
}

func (e *NotRepresentableError) Error() string {
	return fmt.Sprintf("event %d has no textual form at file format version %d", e.Index, e.Version)
}

// Normal-event field errors, split missing/invalid per field so messages
// name the exact repair.
var (
	ErrMissingStartTime = errors.New("Missing `start_time` field")
	ErrInvalidStartTime = errors.New("Invalid `start_time` value")
	ErrMissingEndTime   = errors.New("Missing `end_time` field")
	ErrInvalidEndTime   = errors.New("Invalid `end_time` value")
	ErrMissingFileName  = errors.New("Missing `file_name` field")

	ErrMissingX = errors.New("Missing `x` field")
	ErrInvalidX = errors.New("Invalid `x` value")
	ErrMissingY = errors.New("Missing `y` field")
	ErrInvalidY = errors.New("Invalid `y` value")

	ErrMissingRed   = errors.New("Missing `red` field")
	ErrInvalidRed   = errors.New("Invalid `red` value")
	ErrMissingGreen = errors.New("Missing `green` field")
	ErrInvalidGreen = errors.New("Invalid `green` value")
	ErrMissingBlue  = errors.New("Missing `blue` field")
	ErrInvalidBlue  = errors.New("Invalid `blue` value")

	ErrMissingTime   = errors.New("Missing `time` field")
	ErrInvalidTime   = errors.New("Invalid `time` value")
	ErrMissingLayer  = errors.New("Missing `layer` field")
	ErrInvalidLayer  = errors.New("Invalid `layer` value")
	ErrMissingOrigin = errors.New("Missing `origin` field")
	ErrInvalidOrigin = errors.New("Invalid `origin` value")
	ErrInvalidVolume = errors.New("Invalid `volume` value")
)

func wrapField(tag error, value string, cause error) error {
	return fmt.Errorf("%w: %q: %v", tag, value, cause)
}
