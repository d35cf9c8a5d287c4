package main

import (
	"github.com/spf13/cobra"
)

func resumeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resume [id]",
		Short: "Complete a partially published note",
		Long: `Complete the remaining side effects of a publish that failed after
its local commit. Without an id, lists all pending publications.`,
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

			receipt, err := coord.Resume(cmd.Context(), args[0])
			if err != nil {
				return reportFailure(cmd, err)
			}
			printReceipt(cmd, receipt)
			return nil
		},
	}
}
