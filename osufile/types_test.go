package osufile

import (
	"errors"
	"strconv"
	"testing"
)

func TestPosition_String(t *testing.T) {
	p := PositionFromInts(320, 240)
	if got := p.String(); got != "320,240" {
		t.Errorf("String() = %q, want %q", got, "320,240")
	}

	x, err := ParseDecimal("1.5")
	if err != nil {
		t.Fatalf("ParseDecimal(1.5) error = %v", err)
	}
	y, err := ParseDecimal("-0.25")
	if err != nil {
		t.Fatalf("ParseDecimal(-0.25) error = %v", err)
	}
	p = Position{X: x, Y: y}
	if got := p.String(); got != "1.5,-0.25" {
		t.Errorf("String() = %q, want %q", got, "1.5,-0.25")
	}
}

func TestFormatDecimal(t *testing.T) {
	// the source lexeme's scale survives, trailing zeros included
	for _, s := range []string{"0", "5", "-12", "0.8", "0.80", "1.0", "100.00", "-1.50", "480.5"} {
		d, err := ParseDecimal(s)
		if err != nil {
			t.Fatalf("ParseDecimal(%q) error = %v", s, err)
		}
		if got := FormatDecimal(d); got != s {
			t.Errorf("FormatDecimal(%q) = %q", s, got)
		}
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		input     string
		expected  Volume
		shouldErr bool
	}{
		{"1", 1, false},
		{"100", 100, false},
		{"55", 55, false},
		{"0", 0, true},
		{"101", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseVolume(tt.input)
		if tt.shouldErr {
			if err == nil {
				t.Errorf("ParseVolume(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVolume(%q) error = %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ParseVolume(%q) = %d, want %d", tt.input, got, tt.expected)
		}
	}

	if _, err := ParseVolume("120"); !errors.Is(err, ErrVolumeOutOfRange) {
		t.Errorf("ParseVolume(120) error = %v, want ErrVolumeOutOfRange", err)
	}
}

func TestParseZeroOneBool(t *testing.T) {
	if v, err := ParseZeroOneBool("0"); err != nil || v {
		t.Errorf("ParseZeroOneBool(0) = %v, %v", v, err)
	}
	if v, err := ParseZeroOneBool("1"); err != nil || !v {
		t.Errorf("ParseZeroOneBool(1) = %v, %v", v, err)
	}
	if _, err := ParseZeroOneBool("2"); !errors.Is(err, ErrNotZeroOne) {
		t.Errorf("ParseZeroOneBool(2) error = %v, want ErrNotZeroOne", err)
	}
	if _, err := ParseZeroOneBool("x"); err == nil {
		t.Error("ParseZeroOneBool(x) expected error")
	}

	if FormatZeroOneBool(true) != "1" || FormatZeroOneBool(false) != "0" {
		t.Error("FormatZeroOneBool round trip broken")
	}
}

func TestFlagAtBit(t *testing.T) {
	if !FlagAtBit(0b0101, 0) || FlagAtBit(0b0101, 1) || !FlagAtBit(0b0101, 2) {
		t.Error("FlagAtBit bit selection broken")
	}
}

func TestParsePipeList(t *testing.T) {
	got, err := ParsePipeList("1|2|3", strconv.Atoi)
	if err != nil {
		t.Fatalf("ParsePipeList error = %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("ParsePipeList = %v", got)
	}

	got, err = ParsePipeList("", strconv.Atoi)
	if err != nil || got != nil {
		t.Errorf("ParsePipeList of empty input = %v, %v", got, err)
	}

	if _, err = ParsePipeList("1|x", strconv.Atoi); err == nil {
		t.Error("ParsePipeList with bad item expected error")
	}
}

func TestScanColonFields(t *testing.T) {
	fields := ScanColonFields("AudioFilename: audio.mp3\r\nMode:0\n\nStackLeniency:  0.7\nnocolon\n")
	if len(fields) != 4 {
		t.Fatalf("ScanColonFields returned %d fields, want 4", len(fields))
	}

	if fields[0].Key != "AudioFilename" || fields[0].Sep != " " || fields[0].Value != "audio.mp3" {
		t.Errorf("field 0 = %+v", fields[0])
	}
	if fields[1].Key != "Mode" || fields[1].Sep != "" || fields[1].Value != "0" {
		t.Errorf("field 1 = %+v", fields[1])
	}
	if fields[2].Key != "StackLeniency" || fields[2].Sep != "  " || fields[2].Value != "0.7" {
		t.Errorf("field 2 = %+v", fields[2])
	}
	if fields[3].Key != "" || fields[3].Value != "nocolon" {
		t.Errorf("field 3 = %+v", fields[3])
	}
}

func TestLineError(t *testing.T) {
	base := errors.New("boom")
	err := NewLineError(base, 7)
	if err.Error() != "line 7: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("LineError should unwrap to the cause")
	}
	var le *LineError
	if !errors.As(err, &le) || le.Line != 7 {
		t.Error("errors.As should extract LineError with line number")
	}

	if NewLineError(nil, 3) != nil {
		t.Error("NewLineError(nil) should be nil")
	}
}
