package trace

import (
	"testing"
)

func TestSimulationTrace_RecordSlice_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for timelines
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTimeline})

	// WHEN a slice record is recorded
	st.RecordSlice(SliceRecord{ProcessID: "P1", Seq: 0, Start: 0, End: 2})

	// THEN the trace contains one slice with correct data
	if len(st.Slices) != 1 {
		t.Fatalf("expected 1 slice, got %d", len(st.Slices))
	}
	if st.Slices[0].ProcessID != "P1" {
		t.Errorf("expected process ID P1, got %s", st.Slices[0].ProcessID)
	}
	if st.Slices[0].Duration() != 2 {
		t.Errorf("expected duration 2, got %d", st.Slices[0].Duration())
	}
}

func TestSimulationTrace_EmptyRecords_Ignored(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTimeline})

	// WHEN zero-length slices and idles are recorded
	st.RecordSlice(SliceRecord{ProcessID: "P1", Start: 3, End: 3})
	st.RecordIdle(IdleRecord{Start: 5, End: 5})

	// THEN nothing is stored
	if len(st.Slices) != 0 || len(st.Idles) != 0 {
		t.Errorf("expected no records, got %d slices and %d idles", len(st.Slices), len(st.Idles))
	}
}

func TestSimulationTrace_Nil_RecordsAreNoOps(t *testing.T) {
	// GIVEN tracing disabled
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})
	if st != nil {
		t.Fatal("expected nil trace for level none")
	}

	// WHEN records are added to the nil trace
	// THEN nothing panics
	st.RecordSlice(SliceRecord{ProcessID: "P1", Start: 0, End: 1})
	st.RecordIdle(IdleRecord{Start: 1, End: 2})
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTimeline})

	// WHEN multiple records are added
	st.RecordSlice(SliceRecord{ProcessID: "P1", Seq: 0, Start: 0, End: 2})
	st.RecordIdle(IdleRecord{Start: 2, End: 4})
	st.RecordSlice(SliceRecord{ProcessID: "P2", Seq: 1, Start: 4, End: 6})

	// THEN order is preserved
	if len(st.Slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(st.Slices))
	}
	if st.Slices[0].ProcessID != "P1" || st.Slices[1].ProcessID != "P2" {
		t.Error("slice order not preserved")
	}
	if len(st.Idles) != 1 || st.Idles[0].Start != 2 {
		t.Error("idle record mismatch")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"timeline", true},
		{"", true}, // empty defaults to none
		{"decisions", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
