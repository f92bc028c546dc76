package storyboard

import (
	"strings"

	"github.com/shopspring/decimal"

	"osbc/osufile"
)

// Continuing keyframe groups compress several keyframes into one command
// line: a full value tuple for the first keyframe, then zero or more extra
// tuples, each an implicit keyframe starting where the previous one ended.
// Only the final extra tuple may omit trailing components; when such an
// omitted component is queried it defaults to the first supplied component of
// its own group. The stored model keeps omissions as absent so serialization
// reproduces the source text exactly.

// ContinuingPair is one continuing group of a two-component command (Move,
// VectorScale). Y may be absent on the final group only.
type ContinuingPair struct {
	X decimal.Decimal
	Y *decimal.Decimal
}

// EffectiveY resolves the carry-forward policy for an omitted second
// component.
func (p ContinuingPair) EffectiveY() decimal.Decimal {
	if p.Y != nil {
		return *p.Y
	}
	return p.X
}

func (p ContinuingPair) render(sb *strings.Builder) {
	sb.WriteByte(',')
	sb.WriteString(osufile.FormatDecimal(p.X))
	if p.Y != nil {
		sb.WriteByte(',')
		sb.WriteString(osufile.FormatDecimal(*p.Y))
	}
}

// PairFields is a mandatory start pair plus its continuing groups.
type PairFields struct {
	StartX     decimal.Decimal
	StartY     decimal.Decimal
	Continuing []ContinuingPair
}

// SetContinuing replaces the continuing group at index i, enforcing that an
// omitted second component only appears on the final group.
func (f *PairFields) SetContinuing(i int, x decimal.Decimal, y *decimal.Decimal) error {
	if i < 0 || i >= len(f.Continuing) {
		return ErrContinuingIndexOutOfBounds
	}
	if y == nil && i != len(f.Continuing)-1 {
		return ErrContinuingSecondOmitted
	}
	f.Continuing[i] = ContinuingPair{X: x, Y: y}
	return nil
}

// PushContinuing appends a continuing group. Appending a full pair after an
// omitted one is rejected, the omission must stay last.
func (f *PairFields) PushContinuing(x decimal.Decimal, y *decimal.Decimal) error {
	if n := len(f.Continuing); n > 0 && f.Continuing[n-1].Y == nil {
		return ErrContinuingSecondOmitted
	}
	f.Continuing = append(f.Continuing, ContinuingPair{X: x, Y: y})
	return nil
}

func (f PairFields) render(sb *strings.Builder) {
	sb.WriteString(osufile.FormatDecimal(f.StartX))
	sb.WriteByte(',')
	sb.WriteString(osufile.FormatDecimal(f.StartY))
	for _, c := range f.Continuing {
		c.render(sb)
	}
}

// parsePairFields chunks the remaining comma fields into continuing pairs.
// invalid is the error tag used when a component fails the decimal codec.
func parsePairFields(f *PairFields, fields []string, invalid error) error {
	for i := 0; i < len(fields); i += 2 {
		x, err := decimal.NewFromString(fields[i])
		if err != nil {
			return wrapField(invalid, fields[i], err)
		}
		pair := ContinuingPair{X: x}
		if i+1 < len(fields) {
			y, err := decimal.NewFromString(fields[i+1])
			if err != nil {
				return wrapField(invalid, fields[i+1], err)
			}
			pair.Y = &y
		}
		f.Continuing = append(f.Continuing, pair)
	}
	return nil
}

// Rgb is a full colour keyframe value.
type Rgb struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// ContinuingRgb is one continuing colour group; Green and Blue may be absent
// on the final group, a present Blue requires a present Green.
type ContinuingRgb struct {
	Red   uint8
	Green *uint8
	Blue  *uint8
}

// EffectiveGreen resolves the carry-forward policy for an omitted green.
func (c ContinuingRgb) EffectiveGreen() uint8 {
	if c.Green != nil {
		return *c.Green
	}
	return c.Red
}

// EffectiveBlue resolves the carry-forward policy for an omitted blue.
func (c ContinuingRgb) EffectiveBlue() uint8 {
	if c.Blue != nil {
		return *c.Blue
	}
	return c.Red
}

// ColourFields is a mandatory start colour plus its continuing groups.
type ColourFields struct {
	Start      Rgb
	Continuing []ContinuingRgb
}

// SetContinuing replaces the continuing group at index i, enforcing the
// only-last-may-omit invariant for green and blue.
func (f *ColourFields) SetContinuing(i int, c ContinuingRgb) error {
	if i < 0 || i >= len(f.Continuing) {
		return ErrContinuingIndexOutOfBounds
	}
	if c.Green == nil && c.Blue != nil {
		return ErrContinuingGreenOmitted
	}
	if i != len(f.Continuing)-1 {
		if c.Green == nil {
			return ErrContinuingGreenOmitted
		}
		if c.Blue == nil {
			return ErrContinuingBlueOmitted
		}
	}
	f.Continuing[i] = c
	return nil
}

func (f ColourFields) render(sb *strings.Builder) {
	writeUint8(sb, f.Start.Red)
	sb.WriteByte(',')
	writeUint8(sb, f.Start.Green)
	sb.WriteByte(',')
	writeUint8(sb, f.Start.Blue)
	for _, c := range f.Continuing {
		sb.WriteByte(',')
		writeUint8(sb, c.Red)
		if c.Green != nil {
			sb.WriteByte(',')
			writeUint8(sb, *c.Green)
		}
		if c.Blue != nil {
			sb.WriteByte(',')
			writeUint8(sb, *c.Blue)
		}
	}
}

// ContinuingValues is the single-component form shared by Fade, MoveX, MoveY,
// Scale and Rotate: every extra field is a whole keyframe value.
type ContinuingValues struct {
	Start      decimal.Decimal
	Continuing []decimal.Decimal
}

func (f ContinuingValues) render(sb *strings.Builder) {
	sb.WriteString(osufile.FormatDecimal(f.Start))
	for _, v := range f.Continuing {
		sb.WriteByte(',')
		sb.WriteString(osufile.FormatDecimal(v))
	}
}

func parseContinuingValues(f *ContinuingValues, fields []string, invalid error) error {
	for _, field := range fields {
		v, err := decimal.NewFromString(field)
		if err != nil {
			return wrapField(invalid, field, err)
		}
		f.Continuing = append(f.Continuing, v)
	}
	return nil
}
