package trace

// TraceLevel controls the verbosity of execution tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTimeline captures every execution slice and idle gap.
	TraceLevelTimeline TraceLevel = "timeline"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelTimeline: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects the execution timeline of a single scheduling run.
// A nil *SimulationTrace is valid and records nothing.
type SimulationTrace struct {
	Config TraceConfig   `json:"-"`
	Slices []SliceRecord `json:"slices"`
	Idles  []IdleRecord  `json:"idles"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone so callers can pass the result straight to a scheduler.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == TraceLevelNone || config.Level == "" {
		return nil
	}
	return &SimulationTrace{
		Config: config,
		Slices: make([]SliceRecord, 0),
		Idles:  make([]IdleRecord, 0),
	}
}

// RecordSlice appends an execution slice. Empty slices are ignored.
func (st *SimulationTrace) RecordSlice(record SliceRecord) {
	if st == nil || record.End <= record.Start {
		return
	}
	st.Slices = append(st.Slices, record)
}

// RecordIdle appends an idle gap. Empty gaps are ignored.
func (st *SimulationTrace) RecordIdle(record IdleRecord) {
	if st == nil || record.End <= record.Start {
		return
	}
	st.Idles = append(st.Idles, record)
}
