package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusched/report"
	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/store"
)

// openStore opens the --db database with migrations applied.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return store.Open(ctx, dbPath)
}

// --- cpusched add ---

var addCmd = &cobra.Command{
	Use:   "add ID ARRIVAL BURST",
	Short: "Append a process to the stored process list",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := sim.ParseProcess(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.AddProcess(cmd.Context(), p); err != nil {
			return err
		}
		logrus.Infof("Added %s", p)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", p)
		return nil
	},
}

// --- cpusched list ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the stored process list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		procs, err := st.ListProcesses(cmd.Context())
		if err != nil {
			return err
		}
		if len(procs) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No processes stored.")
			return nil
		}
		report.WriteProcesses(cmd.OutOrStdout(), procs)
		return nil
	},
}

// --- cpusched clear ---

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored process",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		return st.Clear(cmd.Context())
	},
}
