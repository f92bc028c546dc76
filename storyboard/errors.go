// Package storyboard implements the storyboard scripting half of the Events
// section: Sprite/Animation object headers, the ~13 animation command
// variants with their continuing keyframe groups, the indentation-driven
// command tree and its flattener.
package storyboard

import (
	"errors"
	"fmt"
)

// InvalidIndentationError reports a command line whose indentation does not
// match the nesting the container stack allows.
type InvalidIndentationError struct {
	Expected int
	Actual   int
}

func (e *InvalidIndentationError) Error() string {
	return fmt.Sprintf("Invalid indentation, expected %d, got %d", e.Expected, e.Actual)
}

// UnknownObjectTypeError reports an object header token that is neither
// Sprite nor Animation. The event stream parser uses it as the signal to
// retry the line as a normal event.
type UnknownObjectTypeError struct {
	Token string
}

func (e *UnknownObjectTypeError) Error() string {
	return fmt.Sprintf("Unknown object type %s", e.Token)
}

// ObjectFieldError reports an object header field that failed its codec.
type ObjectFieldError struct {
	Field string
	Value string
	Err   error
}

func (e *ObjectFieldError) Error() string {
	return fmt.Sprintf("The field %s failed to parse from %q", e.Field, e.Value)
}

func (e *ObjectFieldError) Unwrap() error { return e.Err }

// MissingObjectFieldError reports an absent object header field.
type MissingObjectFieldError struct {
	Field string
}

func (e *MissingObjectFieldError) Error() string {
	return fmt.Sprintf("The object is missing the field %s", e.Field)
}

// UnknownEasingError reports an easing number outside the known set.
type UnknownEasingError struct {
	Value int
}

func (e *UnknownEasingError) Error() string {
	return fmt.Sprintf("Unknown easing type %d", e.Value)
}

// Command field errors. Message texts are stable tags: the missing/invalid
// split tells the user whether to add a field or fix one.
var (
	ErrUnknownCommandType = errors.New("Unknown command type")

	ErrMissingStartTime = errors.New("Missing `start_time` field")
	ErrInvalidStartTime = errors.New("Invalid `start_time` value")
	ErrMissingEndTime   = errors.New("Missing `end_time` field")
	ErrInvalidEndTime   = errors.New("Invalid `end_time` value")
	ErrMissingEasing    = errors.New("Missing `easing` field")
	ErrInvalidEasing    = errors.New("Invalid `easing` value")

	ErrMissingLoopCount = errors.New("Missing `loop_count` field")
	ErrInvalidLoopCount = errors.New("Invalid `loop_count` value")

	ErrMissingTriggerType = errors.New("Missing `trigger_type` field")
	ErrInvalidTriggerType = errors.New("Invalid `trigger_type` value")
	ErrInvalidGroupNumber = errors.New("Invalid `group_number` value")

	ErrMissingRed              = errors.New("Missing `red` field")
	ErrMissingGreen            = errors.New("Missing `green` field")
	ErrMissingBlue             = errors.New("Missing `blue` field")
	ErrInvalidRed              = errors.New("Invalid `red` value")
	ErrInvalidGreen            = errors.New("Invalid `green` value")
	ErrInvalidBlue             = errors.New("Invalid `blue` value")
	ErrInvalidContinuingColour = errors.New("Invalid continuing colour value")

	ErrMissingParameterType        = errors.New("Missing `parameter_type` field")
	ErrInvalidParameterType        = errors.New("Invalid `parameter_type` value")
	ErrInvalidContinuingParameters = errors.New("Invalid continuing parameter value")

	ErrMissingMoveX          = errors.New("Missing `move_x` field")
	ErrInvalidMoveX          = errors.New("Invalid `move_x` value")
	ErrMissingMoveY          = errors.New("Missing `move_y` field")
	ErrInvalidMoveY          = errors.New("Invalid `move_y` value")
	ErrInvalidContinuingMove = errors.New("Invalid continuing move value")

	ErrMissingScaleX           = errors.New("Missing `scale_x` field")
	ErrInvalidScaleX           = errors.New("Invalid `scale_x` value")
	ErrMissingScaleY           = errors.New("Missing `scale_y` field")
	ErrInvalidScaleY           = errors.New("Invalid `scale_y` value")
	ErrInvalidContinuingScales = errors.New("Invalid continuing scale value")

	ErrMissingStartOpacity        = errors.New("Missing `start_opacity` field")
	ErrInvalidStartOpacity        = errors.New("Invalid `start_opacity` value")
	ErrInvalidContinuingOpacities = errors.New("Invalid continuing opacity value")

	ErrMissingStartScale      = errors.New("Missing `start_scale` field")
	ErrInvalidStartScale      = errors.New("Invalid `start_scale` value")
	ErrInvalidContinuingScale = errors.New("Invalid continuing scale value")

	ErrMissingStartRotation      = errors.New("Missing `start_rotation` field")
	ErrInvalidStartRotation      = errors.New("Invalid `start_rotation` value")
	ErrInvalidContinuingRotation = errors.New("Invalid continuing rotation value")
)

// TooManyHitSoundFieldsError reports a HitSound trigger carrying more
// sub-fields than the grammar has slots for.
type TooManyHitSoundFieldsError struct {
	Count int
}

func (e *TooManyHitSoundFieldsError) Error() string {
	return fmt.Sprintf("There are too many `HitSound` fields: %d", e.Count)
}

// UnknownTriggerTypeError reports an unrecognized trigger keyword.
type UnknownTriggerTypeError struct {
	Token string
}

func (e *UnknownTriggerTypeError) Error() string {
	return fmt.Sprintf("Unknown trigger type %s", e.Token)
}

// UnknownHitSoundTypeError reports an unrecognized segment inside a HitSound
// trigger keyword.
type UnknownHitSoundTypeError struct {
	Token string
}

func (e *UnknownHitSoundTypeError) Error() string {
	return fmt.Sprintf("Unknown `HitSound` type %s", e.Token)
}

// Continuing-field mutation errors. Omission is only legal on the final
// continuing group, so setting an earlier group to an omitted form fails.
var (
	ErrContinuingIndexOutOfBounds = errors.New("continuing fields index out of bounds")
	ErrContinuingGreenOmitted     = errors.New("continuing fields green field is none without it being the last item in the continuing fields")
	ErrContinuingBlueOmitted      = errors.New("continuing fields blue field is none without it being the last item in the continuing fields")
	ErrContinuingSecondOmitted    = errors.New("continuing fields 2nd field is none without it being the last item in the continuing fields")
)
