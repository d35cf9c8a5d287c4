package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slop-at/slop/repo"
)

func listCmd(configPath *string) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published notes in the local repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			store := repo.NewStore(cfg.Repo.Path, cfg.Repo.Branch, slog.Default())
			paths, err := store.List(pattern)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range paths {
				id := strings.TrimSuffix(strings.TrimPrefix(p, "slops/"), ".md")
				doc, err := store.Read(id)
				if err != nil {
					fmt.Fprintf(out, "%s  %s\n", id, faint("(unreadable: "+err.Error()+")"))
					continue
				}
				line := fmt.Sprintf("%s  %s  %s", doc.ID, doc.Created.Format("2006-01-02"), doc.Title)
				if len(doc.Tags) > 0 {
					line += "  " + faint("["+strings.Join(doc.Tags, ", ")+"]")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "match", "", "Glob over repository paths (default: slops/*.md)")
	return cmd
}
