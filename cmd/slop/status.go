package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slop-at/slop/publish"
)

func statusCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status [id]",
		Short: "Show the publication state of a note",
		Long: `Show the publication state of one note, or list all pending
publications when no id is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			coord, err := buildCoordinator(cfg)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return listPending(cmd, coord)
			}

			cp, err := coord.Status(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", cp.ID, cp.Title)
			fmt.Fprintf(out, "  %s %s\n", faint("state"), formatState(cp.State))
			if cp.CommitHash != "" {
				fmt.Fprintf(out, "  %s %s @ %s\n", faint("commit"), cp.CommitHash, cp.Branch)
			}
			if cp.LastError != "" {
				fmt.Fprintf(out, "  %s %s\n", faint("last error"), cp.LastError)
			}
			if cp.State.Recoverable() {
				fmt.Fprintf(out, "%s run 'slop resume %s'\n", warning("pending:"), cp.ID)
			}
			return nil
		},
	}
}

// listPending renders all checkpointed publications.
func listPending(cmd *cobra.Command, coord *publish.Coordinator) error {
	pending, err := coord.Pending()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(pending) == 0 {
		fmt.Fprintln(out, "No pending publications.")
		return nil
	}

	for _, cp := range pending {
		fmt.Fprintf(out, "%s  %-18s %s  %s\n",
			cp.ID, formatState(cp.State), cp.UpdatedAt.Format("2006-01-02 15:04"), cp.Title)
	}
	fmt.Fprintf(out, "\n%d pending; run 'slop resume <id>' to complete.\n", len(pending))
	return nil
}

func formatState(state publish.State) string {
	switch state {
	case publish.StateGraphPublished:
		return success(string(state))
	case publish.StateLocallyCommitted, publish.StatePushed:
		return warning(string(state))
	default:
		return string(state)
	}
}
