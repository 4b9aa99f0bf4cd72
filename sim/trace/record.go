// Package trace provides execution-timeline recording for scheduling runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// SliceRecord captures one uninterrupted stretch of CPU time given to a process.
type SliceRecord struct {
	ProcessID string `json:"process_id"`
	Seq       int    `json:"seq"` // input position; tells duplicate IDs apart
	Start     int64  `json:"start"`
	End       int64  `json:"end"`
	Finished  bool   `json:"finished"` // true if the process completed at End
}

// Duration returns the ticks covered by the slice.
func (r SliceRecord) Duration() int64 {
	return r.End - r.Start
}

// IdleRecord captures a stretch with no runnable process.
type IdleRecord struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Duration returns the ticks covered by the idle gap.
func (r IdleRecord) Duration() int64 {
	return r.End - r.Start
}
