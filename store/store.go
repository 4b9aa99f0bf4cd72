// Package store persists the canonical process list between simulations.
package store

import (
	"context"

	"github.com/inference-sim/cpusched/sim"
)

// Store holds the canonical process list. Simulations read it and never write back;
// completion times live only on the copies each scheduler run makes.
type Store interface {
	// AddProcess validates p and appends it to the list.
	// Duplicate IDs are allowed and stored as distinct entries.
	AddProcess(ctx context.Context, p sim.Process) error
	// ListProcesses returns the list in insertion order.
	ListProcesses(ctx context.Context) ([]sim.Process, error)
	// Clear removes every process.
	Clear(ctx context.Context) error
	// Close releases the underlying database.
	Close() error
}
