package history

import (
	"fmt"
	"io"

	"github.com/BerryBytes/sessionctl/internal/config"
	"github.com/BerryBytes/sessionctl/internal/history"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Dependencies injects the filesystem and output the history commands use.
type Dependencies struct {
	Fs  afero.Fs
	Out io.Writer

	// HistoryPath overrides the default log location; used by tests.
	HistoryPath string
}

// NewHistoryCommands builds the `history` command group.
func NewHistoryCommands(deps Dependencies) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear the role selection history",
	}

	historyCmd.AddCommand(listCmd(deps))
	historyCmd.AddCommand(clearCmd(deps))

	return historyCmd
}

func (d Dependencies) store() (*history.Store, error) {
	path := d.HistoryPath
	if path == "" {
		var err error
		path, err = config.HistoryPath()
		if err != nil {
			return nil, err
		}
	}
	return history.NewStore(d.Fs, path), nil
}

func listCmd(deps Dependencies) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent role selections, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			store, err := deps.store()
			if err != nil {
				return err
			}
			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(deps.Out, "No selection history recorded yet.")
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintln(deps.Out, history.FormatEntry(entry))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")

	return cmd
}

func clearCmd(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire selection history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			store, err := deps.store()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(deps.Out, "Selection history cleared.")
			return nil
		},
	}
}
