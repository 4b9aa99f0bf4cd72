package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// Algorithm selects one of the scheduling strategies.
// The zero value is AlgorithmFCFS, matching the empty-name default.
type Algorithm int

const (
	AlgorithmFCFS Algorithm = iota
	AlgorithmSJF
	AlgorithmRoundRobin
)

// algorithmNames maps accepted names to algorithms.
// Shared by ParseAlgorithm() and IsValidAlgorithm() to avoid duplication.
var algorithmNames = map[string]Algorithm{
	"":            AlgorithmFCFS,
	"fcfs":        AlgorithmFCFS,
	"sjf":         AlgorithmSJF,
	"rr":          AlgorithmRoundRobin,
	"round-robin": AlgorithmRoundRobin,
}

// Algorithms lists every strategy in declaration order.
var Algorithms = []Algorithm{AlgorithmFCFS, AlgorithmSJF, AlgorithmRoundRobin}

// ParseAlgorithm resolves a case-insensitive algorithm name.
// Valid names: "fcfs" (default), "sjf", "rr" / "round-robin".
func ParseAlgorithm(name string) (Algorithm, error) {
	alg, ok := algorithmNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown algorithm %q; valid: fcfs, sjf, rr", name)
	}
	return alg, nil
}

// IsValidAlgorithm returns true if name is a recognized algorithm name.
func IsValidAlgorithm(name string) bool {
	_, err := ParseAlgorithm(name)
	return err == nil
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmFCFS:
		return "fcfs"
	case AlgorithmSJF:
		return "sjf"
	case AlgorithmRoundRobin:
		return "rr"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Preemptive reports whether the algorithm may interrupt a running process.
func (a Algorithm) Preemptive() bool {
	return a == AlgorithmRoundRobin
}

// MarshalText encodes the algorithm by name for JSON and YAML output.
func (a Algorithm) MarshalText() ([]byte, error) {
	switch a {
	case AlgorithmFCFS, AlgorithmSJF, AlgorithmRoundRobin:
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %d", int(a))
	}
}

// UnmarshalText decodes an algorithm name.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

// ValidateQuantum checks a Round Robin time quantum.
func ValidateQuantum(quantum int64) error {
	if quantum <= 0 {
		return fmt.Errorf("%w: quantum must be a positive integer, got %d", ErrInvalidQuantum, quantum)
	}
	return nil
}

// ParseQuantum coerces a raw quantum (CLI flag, form value) and validates it.
// Non-numeric text is reported as ErrInvalidQuantum, like a non-positive value.
func ParseQuantum(text string) (int64, error) {
	q, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidQuantum, text)
	}
	if err := ValidateQuantum(q); err != nil {
		return 0, err
	}
	return q, nil
}
