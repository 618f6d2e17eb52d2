package ignorefile

import (
	"fmt"
	"strings"
)

// WritePolicy decides how selected paths reach the ignore file.
type WritePolicy int

const (
	// PolicyAppend appends paths not already present to the existing file.
	PolicyAppend WritePolicy = iota

	// PolicyReplace regenerates the whole file from the selection.
	PolicyReplace
)

// String returns the flag spelling of the policy.
func (p WritePolicy) String() string {
	switch p {
	case PolicyAppend:
		return "append"
	case PolicyReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ParseWritePolicy parses "append" or "replace" (case-insensitive).
func ParseWritePolicy(s string) (WritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "append":
		return PolicyAppend, nil
	case "replace":
		return PolicyReplace, nil
	default:
		return 0, fmt.Errorf("invalid write mode %q: must be append or replace", s)
	}
}
