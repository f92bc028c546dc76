package storyboard

import (
	"strconv"
	"strings"
	"unicode"
)

// TriggerKind is the keyword family of a trigger condition.
type TriggerKind int

const (
	TriggerHitSound TriggerKind = iota
	TriggerPassing
	TriggerFailing
)

// SampleSet is a hit sound sample bank.
type SampleSet int

const (
	SampleSetAll SampleSet = iota
	SampleSetNormal
	SampleSetSoft
	SampleSetDrum
)

var sampleSetNames = map[SampleSet]string{
	SampleSetAll:    "All",
	SampleSetNormal: "Normal",
	SampleSetSoft:   "Soft",
	SampleSetDrum:   "Drum",
}

func (s SampleSet) String() string { return sampleSetNames[s] }

// Addition is a hit sound overlay kind.
type Addition int

const (
	AdditionWhistle Addition = iota
	AdditionFinish
	AdditionClap
)

var additionNames = map[Addition]string{
	AdditionWhistle: "Whistle",
	AdditionFinish:  "Finish",
	AdditionClap:    "Clap",
}

func (a Addition) String() string { return additionNames[a] }

// TriggerType is the condition of a Trigger command. For the HitSound kind
// the keyword carries up to four optional concatenated sub-fields:
// HitSound[SampleSet][AdditionsSampleSet][Addition][CustomSampleSet].
type TriggerType struct {
	Kind               TriggerKind
	SampleSet          *SampleSet
	AdditionsSampleSet *SampleSet
	Addition           *Addition
	CustomSampleSet    *int
}

const hitSoundPrefix = "HitSound"

// ParseTriggerType decodes a trigger keyword.
func ParseTriggerType(s string) (TriggerType, error) {
	switch s {
	case "Passing":
		return TriggerType{Kind: TriggerPassing}, nil
	case "Failing":
		return TriggerType{Kind: TriggerFailing}, nil
	}
	rest, ok := strings.CutPrefix(s, hitSoundPrefix)
	if !ok {
		return TriggerType{}, &UnknownTriggerTypeError{Token: s}
	}

	fields, err := splitHitSoundFields(rest)
	if err != nil {
		return TriggerType{}, err
	}
	if len(fields) > 4 {
		return TriggerType{}, &TooManyHitSoundFieldsError{Count: len(fields)}
	}

	tt := TriggerType{Kind: TriggerHitSound}
	for _, field := range fields {
		if n, err := strconv.Atoi(field); err == nil {
			if tt.CustomSampleSet != nil {
				return TriggerType{}, &TooManyHitSoundFieldsError{Count: len(fields)}
			}
			tt.CustomSampleSet = &n
			continue
		}
		if set, ok := parseSampleSetWord(field); ok {
			switch {
			case tt.SampleSet == nil && tt.Addition == nil && tt.CustomSampleSet == nil:
				tt.SampleSet = &set
			case tt.AdditionsSampleSet == nil && tt.Addition == nil && tt.CustomSampleSet == nil:
				tt.AdditionsSampleSet = &set
			default:
				return TriggerType{}, &TooManyHitSoundFieldsError{Count: len(fields)}
			}
			continue
		}
		if add, ok := parseAdditionWord(field); ok {
			if tt.Addition != nil || tt.CustomSampleSet != nil {
				return TriggerType{}, &TooManyHitSoundFieldsError{Count: len(fields)}
			}
			tt.Addition = &add
			continue
		}
		return TriggerType{}, &UnknownHitSoundTypeError{Token: field}
	}
	return tt, nil
}

func parseSampleSetWord(s string) (SampleSet, bool) {
	for set, name := range sampleSetNames {
		if s == name {
			return set, true
		}
	}
	return 0, false
}

func parseAdditionWord(s string) (Addition, bool) {
	for add, name := range additionNames {
		if s == name {
			return add, true
		}
	}
	return 0, false
}

// splitHitSoundFields cuts the concatenated tail of a HitSound keyword into
// CamelCase words plus an optional trailing number.
func splitHitSoundFields(s string) ([]string, error) {
	var fields []string
	runes := []rune(s)
	for i := 0; i < len(runes); {
		switch {
		case unicode.IsDigit(runes[i]):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			fields = append(fields, string(runes[i:j]))
			i = j
		case unicode.IsUpper(runes[i]):
			j := i + 1
			for j < len(runes) && unicode.IsLower(runes[j]) {
				j++
			}
			fields = append(fields, string(runes[i:j]))
			i = j
		default:
			return nil, &UnknownHitSoundTypeError{Token: string(runes[i:])}
		}
	}
	return fields, nil
}

func (t TriggerType) String() string {
	switch t.Kind {
	case TriggerPassing:
		return "Passing"
	case TriggerFailing:
		return "Failing"
	}
	var sb strings.Builder
	sb.WriteString(hitSoundPrefix)
	if t.SampleSet != nil {
		sb.WriteString(t.SampleSet.String())
	}
	if t.AdditionsSampleSet != nil {
		sb.WriteString(t.AdditionsSampleSet.String())
	}
	if t.Addition != nil {
		sb.WriteString(t.Addition.String())
	}
	if t.CustomSampleSet != nil {
		sb.WriteString(strconv.Itoa(*t.CustomSampleSet))
	}
	return sb.String()
}
