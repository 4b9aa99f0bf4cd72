// Package testutil provides shared test infrastructure for the scheduling simulator.
// It holds the golden scenario types and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenScenarios represents the structure of testdata/scenarios.json.
type GoldenScenarios struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is a hand-traced process set with its expected schedule.
type GoldenScenario struct {
	Name      string          `json:"name"`
	Algorithm string          `json:"algorithm"`
	Quantum   int64           `json:"quantum"`
	Processes []GoldenProcess `json:"processes"`
	Expected  GoldenExpected  `json:"expected"`
}

// GoldenProcess is one input record of a scenario.
type GoldenProcess struct {
	ID      string `json:"id"`
	Arrival int64  `json:"arrival"`
	Burst   int64  `json:"burst"`
}

// GoldenCompletion is one expected completion, listed in completion order.
type GoldenCompletion struct {
	ID         string `json:"id"`
	Completion int64  `json:"completion"`
}

// GoldenExpected holds the expected schedule and averages (2-decimal precision).
type GoldenExpected struct {
	Completions   []GoldenCompletion `json:"completions"`
	AvgWaiting    float64            `json:"avg_waiting"`
	AvgTurnaround float64            `json:"avg_turnaround"`
}

// LoadGoldenScenarios loads the golden scenarios from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenScenarios(t *testing.T) *GoldenScenarios {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden scenarios: %v", err)
	}

	var golden GoldenScenarios
	if err := json.Unmarshal(data, &golden); err != nil {
		t.Fatalf("Failed to parse golden scenarios: %v", err)
	}
	if len(golden.Scenarios) == 0 {
		t.Fatal("golden scenarios file is empty")
	}
	return &golden
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
