package osufile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Position is the shared 2D coordinate pair. Coordinates are decimals because
// some call sites (storyboard objects) allow fractional values; integer input
// renders back without a fractional part.
type Position struct {
	X decimal.Decimal
	Y decimal.Decimal
}

// PositionFromInts is a convenience constructor for the common integer case.
func PositionFromInts(x, y int) Position {
	return Position{X: decimal.NewFromInt(int64(x)), Y: decimal.NewFromInt(int64(y))}
}

func (p Position) String() string {
	return FormatDecimal(p.X) + "," + FormatDecimal(p.Y)
}

// Volume is a sample loudness percentage.
type Volume int

// ErrVolumeOutOfRange reports a volume outside 1..100.
var ErrVolumeOutOfRange = fmt.Errorf("volume value is out of range, expected 1..100")

// ParseVolume parses a percentage field, range checked.
func ParseVolume(s string) (Volume, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid volume value %q: %w", s, err)
	}
	if v < 1 || v > 100 {
		return 0, fmt.Errorf("%w, got %d", ErrVolumeOutOfRange, v)
	}
	return Volume(v), nil
}

func (v Volume) String() string { return strconv.Itoa(int(v)) }

// ErrNotZeroOne reports a boolean field that is neither 0 nor 1.
var ErrNotZeroOne = fmt.Errorf("expected value of 0 or 1")

// ParseZeroOneBool parses the boolean-as-0/1 encoding used across the file.
func ParseZeroOneBool(s string) (bool, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w, got %d", ErrNotZeroOne, v)
	}
}

// FormatZeroOneBool renders a boolean back to its 0/1 form.
func FormatZeroOneBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FlagAtBit tests a bit-flag set for the nth bit.
func FlagAtBit(value uint8, nthBit uint8) bool {
	return value>>nthBit&1 == 1
}

// ParsePipeList splits a |-separated set, mapping each item. Empty input
// yields an empty list.
func ParsePipeList[T any](s string, parse func(string) (T, error)) ([]T, error) {
	if s == "" {
		return nil, nil
	}
	items := strings.Split(s, "|")
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := parse(item)
		if err != nil {
			return nil, fmt.Errorf("pipe list item %q: %w", item, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// RenderPipeList joins rendered items with |.
func RenderPipeList[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, "|")
}

// ColonField is one `key: value` line from a flat section, with the
// whitespace that followed the separator preserved for round-tripping.
type ColonField struct {
	Key   string
	Sep   string
	Value string
}

// ScanColonFields splits flat `key: value` section text into fields. It is the
// colon-separated-set primitive the simpler sections and the CLI's section
// splitter share; lines without a colon are returned with an empty Key.
func ScanColonFields(s string) []ColonField {
	var fields []ColonField
	for line := range strings.Lines(s) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			fields = append(fields, ColonField{Value: line})
			continue
		}
		trimmed := strings.TrimLeft(value, " ")
		fields = append(fields, ColonField{
			Key:   key,
			Sep:   value[:len(value)-len(trimmed)],
			Value: trimmed,
		})
	}
	return fields
}

// ParseDecimal wraps decimal parsing so all codecs share one entry point.
func ParseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// FormatDecimal renders d at the scale it carries. Decimal.String trims
// trailing fractional zeros, which would rewrite a value parsed from "0.80"
// as "0.8" and break byte-exact round trips.
func FormatDecimal(d decimal.Decimal) string {
	if e := d.Exponent(); e < 0 {
		return d.StringFixed(-e)
	}
	return d.String()
}
