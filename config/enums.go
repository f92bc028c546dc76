package config

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// FailureMode selects how files which fail to parse are treated.
type FailureMode int

const (
	// FailureModeAbort stops processing a file at the first bad line.
	FailureModeAbort FailureMode = iota
	// FailureModeReport keeps going and reports every bad line at the end.
	FailureModeReport
)

func (m FailureMode) String() string {
	switch m {
	case FailureModeAbort:
		return "abort"
	case FailureModeReport:
		return "report"
	default:
		return fmt.Sprintf("FailureMode(%d)", int(m))
	}
}

func (m FailureMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *FailureMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "abort":
		*m = FailureModeAbort
	case "report":
		*m = FailureModeReport
	default:
		return fmt.Errorf("unknown failure mode %q", s)
	}
	return nil
}
