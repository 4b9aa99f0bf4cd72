package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusched/sim"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := Open(context.Background(), ":memory:")
	require.NoError(t, err, "open store")
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStore_AddAndList_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	// GIVEN processes added out of arrival order
	want := []sim.Process{
		sim.NewProcess("P3", 2, 8),
		sim.NewProcess("P1", 0, 5),
		sim.NewProcess("P2", 1, 3),
	}
	for _, p := range want {
		require.NoError(t, st.AddProcess(ctx, p))
	}

	// WHEN listed
	got, err := st.ListProcesses(ctx)
	require.NoError(t, err)

	// THEN insertion order is kept
	assert.Equal(t, want, got)
}

func TestSQLiteStore_DuplicateIDs_StoredSeparately(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	require.NoError(t, st.AddProcess(ctx, sim.NewProcess("dup", 0, 1)))
	require.NoError(t, st.AddProcess(ctx, sim.NewProcess("dup", 3, 2)))

	got, err := st.ListProcesses(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSQLiteStore_InvalidProcess_Rejected(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	assert.ErrorIs(t, st.AddProcess(ctx, sim.NewProcess("P1", 0, 0)), sim.ErrInvalidInput)
	assert.ErrorIs(t, st.AddProcess(ctx, sim.NewProcess("", 0, 1)), sim.ErrInvalidInput)
	assert.ErrorIs(t, st.AddProcess(ctx, sim.NewProcess("P1", -1, 1)), sim.ErrInvalidInput)

	got, err := st.ListProcesses(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteStore_Clear(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	require.NoError(t, st.AddProcess(ctx, sim.NewProcess("P1", 0, 1)))

	require.NoError(t, st.Clear(ctx))

	got, err := st.ListProcesses(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got, "empty list must be non-nil for JSON encoding")
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "procs.db")

	st, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.AddProcess(ctx, sim.NewProcess("P1", 0, 4)))
	require.NoError(t, st.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.ListProcesses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []sim.Process{sim.NewProcess("P1", 0, 4)}, got)
}

func TestSQLiteStore_StoredListSimulatesWithoutMutation(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	for _, p := range []sim.Process{sim.NewProcess("P1", 0, 5), sim.NewProcess("P2", 1, 3)} {
		require.NoError(t, st.AddProcess(ctx, p))
	}
	procs, err := st.ListProcesses(ctx)
	require.NoError(t, err)

	_, err = sim.RunRoundRobin(procs, 2)
	require.NoError(t, err)

	again, err := st.ListProcesses(ctx)
	require.NoError(t, err)
	assert.Equal(t, procs, again)
}
