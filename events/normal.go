package events

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"osbc/osufile"
	"osbc/storyboard"
)

// Background is the `0` event selecting the beatmap background image.
type Background struct {
	FileName string
	Position *osufile.Position
}

// Video is the `1`/`Video` event. shortHand records which header spelling
// the source used so it round-trips unchanged.
type Video struct {
	FileName  string
	Position  *osufile.Position
	shortHand bool
}

// NewVideo builds a video event with the shorthand header, the spelling the
// serializer has always preferred for new content.
func NewVideo(fileName string, position *osufile.Position) Video {
	return Video{FileName: fileName, Position: position, shortHand: true}
}

// Break is the `2`/`Break` gameplay pause event. EndTime is internal time,
// offset-adjusted like NormalEvent.StartTime.
type Break struct {
	EndTime   int
	shortHand bool
}

// NewBreak builds a break event with the shorthand header.
func NewBreak(endTime int) Break {
	return Break{EndTime: endTime, shortHand: true}
}

// ColourTransformation is the `3` event tinting the background. It stopped
// being representable at file format version 14.
type ColourTransformation struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// LegacySprite is the numeric `4` event, the pre-storyboard spelling of a
// sprite placement. Unlike the `Sprite` object header it carries no command
// script and its enums are numeric codes only.
type LegacySprite struct {
	Layer    storyboard.Layer
	Origin   storyboard.Origin
	FileName string
	Position *osufile.Position
}

// LegacyAnimation is the numeric `5` event, the pre-storyboard spelling of
// an animation placement.
type LegacyAnimation struct {
	Layer    storyboard.Layer
	Origin   storyboard.Origin
	FileName string
	Position *osufile.Position
}

// Sample is the legacy `6` event playing a one-shot storyboard sound.
type Sample struct {
	Time     decimal.Decimal
	Layer    storyboard.Layer
	FileName string
	Volume   *osufile.Volume
}

// EffectiveVolume resolves an omitted volume to the full default. The stored
// model keeps the omission so the field round-trips as absent.
func (s Sample) EffectiveVolume() osufile.Volume {
	if s.Volume != nil {
		return *s.Volume
	}
	return 100
}

// parseNormalEvent decodes the non-storyboard shorthand events. An
// unrecognized header token yields *UnknownEventTypeError, everything else
// is a field-level failure.
func parseNormalEvent(line string, version osufile.Version) (Event, error) {
	fields := strings.Split(line, ",")
	policy := osufile.PolicyFor(version)

	switch header := fields[0]; header {
	case "0":
		return parseBackground(fields[1:], policy)
	case "1", "Video":
		return parseVideo(fields[1:], header == "1", policy)
	case "2", "Break":
		return parseBreak(fields[1:], header == "2", policy)
	case "3":
		return parseColourTransformation(fields[1:], policy)
	case "4":
		return parseLegacySprite(fields[1:])
	case "5":
		return parseLegacyAnimation(fields[1:])
	case "6":
		return parseSample(fields[1:])
	default:
		return nil, &UnknownEventTypeError{Token: header}
	}
}

func parseStartTime(fields []string, policy osufile.Policy, withOffset bool) (int, error) {
	if len(fields) < 1 {
		return 0, ErrMissingStartTime
	}
	t, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, wrapField(ErrInvalidStartTime, fields[0], err)
	}
	if withOffset {
		t = policy.ToParsedTime(t)
	}
	return t, nil
}

// parsePosition handles the optional `,x,y` suffix. Whether an absent pair
// stays absent or materializes as (0,0) is a representational rule of the
// version, not just a default value.
func parsePosition(fields []string, policy osufile.Policy) (*osufile.Position, error) {
	if len(fields) == 0 {
		if policy.MaterializePosition {
			p := osufile.PositionFromInts(0, 0)
			return &p, nil
		}
		return nil, nil
	}
	if len(fields) == 1 {
		return nil, ErrMissingY
	}
	var (
		pos osufile.Position
		err error
	)
	if pos.X, err = osufile.ParseDecimal(fields[0]); err != nil {
		return nil, wrapField(ErrInvalidX, fields[0], err)
	}
	y := strings.Join(fields[1:], ",")
	if pos.Y, err = osufile.ParseDecimal(y); err != nil {
		return nil, wrapField(ErrInvalidY, y, err)
	}
	return &pos, nil
}

func parseBackground(fields []string, policy osufile.Policy) (Event, error) {
	// background start times never carried the legacy offset
	start, err := parseStartTime(fields, policy, false)
	if err != nil {
		return nil, err
	}
	if len(fields) < 2 {
		return nil, ErrMissingFileName
	}
	pos, err := parsePosition(fields[2:], policy)
	if err != nil {
		return nil, err
	}
	return NormalEvent{StartTime: start, Params: Background{FileName: fields[1], Position: pos}}, nil
}

func parseVideo(fields []string, shortHand bool, policy osufile.Policy) (Event, error) {
	start, err := parseStartTime(fields, policy, true)
	if err != nil {
		return nil, err
	}
	if len(fields) < 2 {
		return nil, ErrMissingFileName
	}
	pos, err := parsePosition(fields[2:], policy)
	if err != nil {
		return nil, err
	}
	return NormalEvent{StartTime: start, Params: Video{FileName: fields[1], Position: pos, shortHand: shortHand}}, nil
}

func parseBreak(fields []string, shortHand bool, policy osufile.Policy) (Event, error) {
	start, err := parseStartTime(fields, policy, true)
	if err != nil {
		return nil, err
	}
	if len(fields) < 2 {
		return nil, ErrMissingEndTime
	}
	endField := strings.Join(fields[1:], ",")
	end, err := strconv.Atoi(endField)
	if err != nil {
		return nil, wrapField(ErrInvalidEndTime, endField, err)
	}
	return NormalEvent{
		StartTime: start,
		Params:    Break{EndTime: policy.ToParsedTime(end), shortHand: shortHand},
	}, nil
}

func parseColourTransformation(fields []string, policy osufile.Policy) (Event, error) {
	start, err := parseStartTime(fields, policy, true)
	if err != nil {
		return nil, err
	}
	names := []struct {
		missing error
		invalid error
	}{
		{ErrMissingRed, ErrInvalidRed},
		{ErrMissingGreen, ErrInvalidGreen},
		{ErrMissingBlue, ErrInvalidBlue},
	}
	var rgb [3]uint8
	for i, tag := range names {
		if len(fields) < i+2 {
			return nil, tag.missing
		}
		field := fields[i+1]
		if i == 2 {
			// blue consumes the rest of the line
			field = strings.Join(fields[i+1:], ",")
		}
		v, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, wrapField(tag.invalid, field, err)
		}
		rgb[i] = uint8(v)
	}
	return NormalEvent{
		StartTime: start,
		Params:    ColourTransformation{Red: rgb[0], Green: rgb[1], Blue: rgb[2]},
	}, nil
}

// parseLegacyLayer accepts only the numeric layer codes. The numeric-header
// events predate the named spellings, so a named layer there is an error and
// the numeric form round-trips by construction.
func parseLegacyLayer(s string) (storyboard.Layer, error) {
	if _, err := strconv.Atoi(s); err != nil {
		return 0, err
	}
	return storyboard.ParseLayer(s)
}

func parseLegacyOrigin(s string) (storyboard.Origin, error) {
	if _, err := strconv.Atoi(s); err != nil {
		return 0, err
	}
	return storyboard.ParseOrigin(s)
}

// parseLegacyPlacement decodes the shared `<layer>,<origin>,<file>[,<x>,<y>]`
// tail of the `4` and `5` events. The position stays absent when omitted at
// every version, these events never materialize it.
func parseLegacyPlacement(fields []string) (storyboard.Layer, storyboard.Origin, string, *osufile.Position, error) {
	if len(fields) < 1 {
		return 0, 0, "", nil, ErrMissingLayer
	}
	layer, err := parseLegacyLayer(fields[0])
	if err != nil {
		return 0, 0, "", nil, wrapField(ErrInvalidLayer, fields[0], err)
	}
	if len(fields) < 2 {
		return 0, 0, "", nil, ErrMissingOrigin
	}
	origin, err := parseLegacyOrigin(fields[1])
	if err != nil {
		return 0, 0, "", nil, wrapField(ErrInvalidOrigin, fields[1], err)
	}
	if len(fields) < 3 {
		return 0, 0, "", nil, ErrMissingFileName
	}
	fileName := fields[2]

	var pos *osufile.Position
	if len(fields) > 3 {
		if len(fields) == 4 {
			return 0, 0, "", nil, ErrMissingY
		}
		var p osufile.Position
		if p.X, err = osufile.ParseDecimal(fields[3]); err != nil {
			return 0, 0, "", nil, wrapField(ErrInvalidX, fields[3], err)
		}
		y := strings.Join(fields[4:], ",")
		if p.Y, err = osufile.ParseDecimal(y); err != nil {
			return 0, 0, "", nil, wrapField(ErrInvalidY, y, err)
		}
		pos = &p
	}
	return layer, origin, fileName, pos, nil
}

func parseLegacySprite(fields []string) (Event, error) {
	layer, origin, fileName, pos, err := parseLegacyPlacement(fields)
	if err != nil {
		return nil, err
	}
	return LegacySprite{Layer: layer, Origin: origin, FileName: fileName, Position: pos}, nil
}

func parseLegacyAnimation(fields []string) (Event, error) {
	layer, origin, fileName, pos, err := parseLegacyPlacement(fields)
	if err != nil {
		return nil, err
	}
	return LegacyAnimation{Layer: layer, Origin: origin, FileName: fileName, Position: pos}, nil
}

func parseSample(fields []string) (Event, error) {
	if len(fields) < 1 {
		return nil, ErrMissingTime
	}
	t, err := decimal.NewFromString(fields[0])
	if err != nil {
		return nil, wrapField(ErrInvalidTime, fields[0], err)
	}
	if len(fields) < 2 {
		return nil, ErrMissingLayer
	}
	layer, err := parseLegacyLayer(fields[1])
	if err != nil {
		return nil, wrapField(ErrInvalidLayer, fields[1], err)
	}
	if len(fields) < 3 {
		return nil, ErrMissingFileName
	}
	sample := Sample{Time: t, Layer: layer, FileName: fields[2]}
	if len(fields) > 3 {
		volField := strings.Join(fields[3:], ",")
		vol, err := osufile.ParseVolume(volField)
		if err != nil {
			return nil, wrapField(ErrInvalidVolume, volField, err)
		}
		sample.Volume = &vol
	}
	return sample, nil
}

func positionSuffix(p *osufile.Position, policy osufile.Policy) string {
	if p != nil {
		return "," + p.String()
	}
	if policy.MaterializePosition {
		return ",0,0"
	}
	return ""
}

func (p Background) render(startTime int, version osufile.Version) (string, bool) {
	policy := osufile.PolicyFor(version)
	return "0," + strconv.Itoa(startTime) + "," + p.FileName + positionSuffix(p.Position, policy), true
}

func (p Video) render(startTime int, version osufile.Version) (string, bool) {
	header := "Video"
	if p.shortHand {
		header = "1"
	}
	policy := osufile.PolicyFor(version)
	return header + "," + renderTime(startTime, version) + "," + p.FileName + positionSuffix(p.Position, policy), true
}

func (p Break) render(startTime int, version osufile.Version) (string, bool) {
	header := "Break"
	if p.shortHand {
		header = "2"
	}
	return header + "," + renderTime(startTime, version) + "," + renderTime(p.EndTime, version), true
}

func (p ColourTransformation) render(startTime int, version osufile.Version) (string, bool) {
	if !osufile.PolicyFor(version).ColourEventRepresentable {
		return "", false
	}
	return "3," + renderTime(startTime, version) + "," +
		strconv.Itoa(int(p.Red)) + "," + strconv.Itoa(int(p.Green)) + "," + strconv.Itoa(int(p.Blue)), true
}

// legacyPositionSuffix prints the optional pair of the numeric-header events.
// An absent pair stays absent at every version.
func legacyPositionSuffix(p *osufile.Position) string {
	if p == nil {
		return ""
	}
	return "," + p.String()
}

func (s LegacySprite) Render(osufile.Version) (string, bool) {
	return "4," + strconv.Itoa(int(s.Layer)) + "," + strconv.Itoa(int(s.Origin)) + "," +
		s.FileName + legacyPositionSuffix(s.Position), true
}

func (s LegacyAnimation) Render(osufile.Version) (string, bool) {
	return "5," + strconv.Itoa(int(s.Layer)) + "," + strconv.Itoa(int(s.Origin)) + "," +
		s.FileName + legacyPositionSuffix(s.Position), true
}

func (s Sample) Render(osufile.Version) (string, bool) {
	// legacy numeric layer spelling regardless of version, like the event
	// header itself
	line := "6," + osufile.FormatDecimal(s.Time) + "," + strconv.Itoa(int(s.Layer)) + "," + s.FileName
	if s.Volume != nil {
		line += "," + s.Volume.String()
	}
	return line, true
}
