package storyboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Command is one animation instruction. Properties is a closed variant set;
// Loop and Trigger own nested commands and are the only recursive structure
// in the model.
type Command struct {
	Properties CommandProperties
}

// CommandProperties is implemented by the command variants only.
type CommandProperties interface {
	// Render writes the command line without indentation.
	Render() string

	commandProperties()
}

// CommandTiming is the prefix shared by every non-container command. A nil
// EndTime round-trips as a textually empty field and means "same as
// StartTime".
type CommandTiming struct {
	Easing    Easing
	StartTime int
	EndTime   *int
}

func (t CommandTiming) renderPrefix(token string, sb *strings.Builder) {
	sb.WriteString(token)
	sb.WriteByte(',')
	sb.WriteString(t.Easing.String())
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(t.StartTime))
	sb.WriteByte(',')
	if t.EndTime != nil {
		sb.WriteString(strconv.Itoa(*t.EndTime))
	}
	sb.WriteByte(',')
}

type (
	// Fade animates opacity.
	Fade struct {
		CommandTiming
		Opacities ContinuingValues
	}
	// Move animates both position axes.
	Move struct {
		CommandTiming
		Positions PairFields
	}
	// MoveX animates the horizontal position only.
	MoveX struct {
		CommandTiming
		Xs ContinuingValues
	}
	// MoveY animates the vertical position only.
	MoveY struct {
		CommandTiming
		Ys ContinuingValues
	}
	// Scale animates uniform size.
	Scale struct {
		CommandTiming
		Scales ContinuingValues
	}
	// VectorScale animates each axis' size separately.
	VectorScale struct {
		CommandTiming
		Scales PairFields
	}
	// Rotate animates rotation in radians.
	Rotate struct {
		CommandTiming
		Rotations ContinuingValues
	}
	// Colour animates the blend colour.
	Colour struct {
		CommandTiming
		Colours ColourFields
	}
	// Parameter toggles a render flag for the command's duration.
	Parameter struct {
		CommandTiming
		Start      ParameterKind
		Continuing []ParameterKind
	}
	// Loop replays its child commands LoopCount times.
	Loop struct {
		StartTime int
		LoopCount int
		Commands  []Command
	}
	// Trigger runs its child commands when the trigger condition fires.
	Trigger struct {
		Type        TriggerType
		GroupNumber *int
		StartTime   int
		EndTime     int
		Commands    []Command
	}
)

func (*Fade) commandProperties()        {}
func (*Move) commandProperties()        {}
func (*MoveX) commandProperties()       {}
func (*MoveY) commandProperties()       {}
func (*Scale) commandProperties()       {}
func (*VectorScale) commandProperties() {}
func (*Rotate) commandProperties()      {}
func (*Colour) commandProperties()      {}
func (*Parameter) commandProperties()   {}
func (*Loop) commandProperties()        {}
func (*Trigger) commandProperties()     {}

// ParameterKind is a render flag value of the Parameter command.
type ParameterKind string

const (
	ParameterHorizontalFlip ParameterKind = "H"
	ParameterVerticalFlip   ParameterKind = "V"
	ParameterAdditiveBlend  ParameterKind = "A"
)

func ParseParameterKind(s string) (ParameterKind, error) {
	switch k := ParameterKind(s); k {
	case ParameterHorizontalFlip, ParameterVerticalFlip, ParameterAdditiveBlend:
		return k, nil
	default:
		return "", fmt.Errorf("unknown parameter type %q", s)
	}
}

func wrapField(tag error, value string, cause error) error {
	return fmt.Errorf("%w: %q: %v", tag, value, cause)
}

func writeUint8(sb *strings.Builder, v uint8) {
	sb.WriteString(strconv.Itoa(int(v)))
}

// ParseCommand decodes one command line, indentation already stripped. The
// grammar is not version-sensitive.
func ParseCommand(s string) (Command, error) {
	fields := strings.Split(s, ",")
	token := fields[0]
	rest := fields[1:]

	switch token {
	case "L":
		return parseLoop(rest)
	case "T":
		return parseTrigger(rest)
	case "F", "M", "MX", "MY", "S", "V", "R", "C", "P":
		return parseTimedCommand(token, rest)
	default:
		return Command{}, ErrUnknownCommandType
	}
}

func parseTimedCommand(token string, fields []string) (Command, error) {
	var timing CommandTiming
	if len(fields) < 1 {
		return Command{}, ErrMissingEasing
	}
	easing, err := ParseEasing(fields[0])
	if err != nil {
		return Command{}, wrapField(ErrInvalidEasing, fields[0], err)
	}
	timing.Easing = easing

	if len(fields) < 2 {
		return Command{}, ErrMissingStartTime
	}
	if timing.StartTime, err = strconv.Atoi(fields[1]); err != nil {
		return Command{}, wrapField(ErrInvalidStartTime, fields[1], err)
	}

	if len(fields) < 3 {
		return Command{}, ErrMissingEndTime
	}
	if fields[2] != "" {
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			return Command{}, wrapField(ErrInvalidEndTime, fields[2], err)
		}
		timing.EndTime = &end
	}

	values := fields[3:]
	props, err := parseCommandValues(token, timing, values)
	if err != nil {
		return Command{}, err
	}
	return Command{Properties: props}, nil
}

func parseCommandValues(token string, timing CommandTiming, values []string) (CommandProperties, error) {
	switch token {
	case "F":
		cmd := &Fade{CommandTiming: timing}
		if err := parseSingleValue(&cmd.Opacities, values,
			ErrMissingStartOpacity, ErrInvalidStartOpacity, ErrInvalidContinuingOpacities); err != nil {
			return nil, err
		}
		return cmd, nil
	case "MX":
		cmd := &MoveX{CommandTiming: timing}
		if err := parseSingleValue(&cmd.Xs, values,
			ErrMissingMoveX, ErrInvalidMoveX, ErrInvalidContinuingMove); err != nil {
			return nil, err
		}
		return cmd, nil
	case "MY":
		cmd := &MoveY{CommandTiming: timing}
		if err := parseSingleValue(&cmd.Ys, values,
			ErrMissingMoveY, ErrInvalidMoveY, ErrInvalidContinuingMove); err != nil {
			return nil, err
		}
		return cmd, nil
	case "S":
		cmd := &Scale{CommandTiming: timing}
		if err := parseSingleValue(&cmd.Scales, values,
			ErrMissingStartScale, ErrInvalidStartScale, ErrInvalidContinuingScale); err != nil {
			return nil, err
		}
		return cmd, nil
	case "R":
		cmd := &Rotate{CommandTiming: timing}
		if err := parseSingleValue(&cmd.Rotations, values,
			ErrMissingStartRotation, ErrInvalidStartRotation, ErrInvalidContinuingRotation); err != nil {
			return nil, err
		}
		return cmd, nil
	case "M":
		cmd := &Move{CommandTiming: timing}
		if err := parsePairValue(&cmd.Positions, values,
			ErrMissingMoveX, ErrInvalidMoveX, ErrMissingMoveY, ErrInvalidMoveY, ErrInvalidContinuingMove); err != nil {
			return nil, err
		}
		return cmd, nil
	case "V":
		cmd := &VectorScale{CommandTiming: timing}
		if err := parsePairValue(&cmd.Scales, values,
			ErrMissingScaleX, ErrInvalidScaleX, ErrMissingScaleY, ErrInvalidScaleY, ErrInvalidContinuingScales); err != nil {
			return nil, err
		}
		return cmd, nil
	case "C":
		cmd := &Colour{CommandTiming: timing}
		if err := parseColourValue(&cmd.Colours, values); err != nil {
			return nil, err
		}
		return cmd, nil
	case "P":
		cmd := &Parameter{CommandTiming: timing}
		if len(values) < 1 {
			return nil, ErrMissingParameterType
		}
		start, err := ParseParameterKind(values[0])
		if err != nil {
			return nil, wrapField(ErrInvalidParameterType, values[0], err)
		}
		cmd.Start = start
		for _, v := range values[1:] {
			p, err := ParseParameterKind(v)
			if err != nil {
				return nil, wrapField(ErrInvalidContinuingParameters, v, err)
			}
			cmd.Continuing = append(cmd.Continuing, p)
		}
		return cmd, nil
	}
	// reachable only on a dispatch table bug
	return nil, ErrUnknownCommandType
}

func parseSingleValue(f *ContinuingValues, values []string, missing, invalid, invalidContinuing error) error {
	if len(values) < 1 {
		return missing
	}
	start, err := decimal.NewFromString(values[0])
	if err != nil {
		return wrapField(invalid, values[0], err)
	}
	f.Start = start
	return parseContinuingValues(f, values[1:], invalidContinuing)
}

func parsePairValue(f *PairFields, values []string, missingX, invalidX, missingY, invalidY, invalidContinuing error) error {
	if len(values) < 1 {
		return missingX
	}
	x, err := decimal.NewFromString(values[0])
	if err != nil {
		return wrapField(invalidX, values[0], err)
	}
	if len(values) < 2 {
		return missingY
	}
	y, err := decimal.NewFromString(values[1])
	if err != nil {
		return wrapField(invalidY, values[1], err)
	}
	f.StartX, f.StartY = x, y
	return parsePairFields(f, values[2:], invalidContinuing)
}

func parseUint8Field(s string, invalid error) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, wrapField(invalid, s, err)
	}
	return uint8(v), nil
}

func parseColourValue(f *ColourFields, values []string) error {
	if len(values) < 1 {
		return ErrMissingRed
	}
	red, err := parseUint8Field(values[0], ErrInvalidRed)
	if err != nil {
		return err
	}
	if len(values) < 2 {
		return ErrMissingGreen
	}
	green, err := parseUint8Field(values[1], ErrInvalidGreen)
	if err != nil {
		return err
	}
	if len(values) < 3 {
		return ErrMissingBlue
	}
	blue, err := parseUint8Field(values[2], ErrInvalidBlue)
	if err != nil {
		return err
	}
	f.Start = Rgb{Red: red, Green: green, Blue: blue}

	for i := 3; i < len(values); i += 3 {
		c := ContinuingRgb{}
		if c.Red, err = parseUint8Field(values[i], ErrInvalidContinuingColour); err != nil {
			return err
		}
		if i+1 < len(values) {
			g, err := parseUint8Field(values[i+1], ErrInvalidContinuingColour)
			if err != nil {
				return err
			}
			c.Green = &g
		}
		if i+2 < len(values) {
			b, err := parseUint8Field(values[i+2], ErrInvalidContinuingColour)
			if err != nil {
				return err
			}
			c.Blue = &b
		}
		f.Continuing = append(f.Continuing, c)
	}
	return nil
}

func parseLoop(fields []string) (Command, error) {
	if len(fields) < 1 {
		return Command{}, ErrMissingStartTime
	}
	start, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, wrapField(ErrInvalidStartTime, fields[0], err)
	}
	if len(fields) < 2 {
		return Command{}, ErrMissingLoopCount
	}
	// trailing fields make the loop count invalid, they are not ignored
	countField := strings.Join(fields[1:], ",")
	count, err := strconv.Atoi(countField)
	if err != nil {
		return Command{}, wrapField(ErrInvalidLoopCount, countField, err)
	}
	return Command{Properties: &Loop{StartTime: start, LoopCount: count}}, nil
}

func parseTrigger(fields []string) (Command, error) {
	if len(fields) < 1 {
		return Command{}, ErrMissingTriggerType
	}
	tt, err := ParseTriggerType(fields[0])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidTriggerType, err)
	}

	trig := &Trigger{Type: tt}
	rest := fields[1:]
	switch len(rest) {
	case 0:
		return Command{}, ErrMissingStartTime
	case 1:
		return Command{}, ErrMissingEndTime
	case 3:
		group, err := strconv.Atoi(rest[0])
		if err != nil {
			return Command{}, wrapField(ErrInvalidGroupNumber, rest[0], err)
		}
		trig.GroupNumber = &group
		rest = rest[1:]
	case 2:
		// no group number
	default:
		return Command{}, wrapField(ErrInvalidEndTime, strings.Join(rest[2:], ","), fmt.Errorf("unexpected trailing fields"))
	}
	if trig.StartTime, err = strconv.Atoi(rest[0]); err != nil {
		return Command{}, wrapField(ErrInvalidStartTime, rest[0], err)
	}
	if trig.EndTime, err = strconv.Atoi(rest[1]); err != nil {
		return Command{}, wrapField(ErrInvalidEndTime, rest[1], err)
	}
	return Command{Properties: trig}, nil
}

func (c *Fade) Render() string {
	var sb strings.Builder
	c.renderPrefix("F", &sb)
	c.Opacities.render(&sb)
	return sb.String()
}

func (c *Move) Render() string {
	var sb strings.Builder
	c.renderPrefix("M", &sb)
	c.Positions.render(&sb)
	return sb.String()
}

func (c *MoveX) Render() string {
	var sb strings.Builder
	c.renderPrefix("MX", &sb)
	c.Xs.render(&sb)
	return sb.String()
}

func (c *MoveY) Render() string {
	var sb strings.Builder
	c.renderPrefix("MY", &sb)
	c.Ys.render(&sb)
	return sb.String()
}

func (c *Scale) Render() string {
	var sb strings.Builder
	c.renderPrefix("S", &sb)
	c.Scales.render(&sb)
	return sb.String()
}

func (c *VectorScale) Render() string {
	var sb strings.Builder
	c.renderPrefix("V", &sb)
	c.Scales.render(&sb)
	return sb.String()
}

func (c *Rotate) Render() string {
	var sb strings.Builder
	c.renderPrefix("R", &sb)
	c.Rotations.render(&sb)
	return sb.String()
}

func (c *Colour) Render() string {
	var sb strings.Builder
	c.renderPrefix("C", &sb)
	c.Colours.render(&sb)
	return sb.String()
}

func (c *Parameter) Render() string {
	var sb strings.Builder
	c.renderPrefix("P", &sb)
	sb.WriteString(string(c.Start))
	for _, p := range c.Continuing {
		sb.WriteByte(',')
		sb.WriteString(string(p))
	}
	return sb.String()
}

func (c *Loop) Render() string {
	return fmt.Sprintf("L,%d,%d", c.StartTime, c.LoopCount)
}

func (c *Trigger) Render() string {
	var sb strings.Builder
	sb.WriteString("T,")
	sb.WriteString(c.Type.String())
	if c.GroupNumber != nil {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(*c.GroupNumber))
	}
	fmt.Fprintf(&sb, ",%d,%d", c.StartTime, c.EndTime)
	return sb.String()
}

// childCommands exposes the nested command list of container variants.
func (c *Command) childCommands() *[]Command {
	switch p := c.Properties.(type) {
	case *Loop:
		return &p.Commands
	case *Trigger:
		return &p.Commands
	default:
		return nil
	}
}
