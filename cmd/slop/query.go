package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/slop-at/slop/graph"
)

func queryCmd(configPath *string) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "query [sparql]",
		Short: "Run a SPARQL query against the graph endpoint",
		Long: `Run a read query against the configured graph endpoint and print the
bindings. The query comes from the argument or from a file via --file.
The query text is passed through unmodified; the server's own error for a
malformed query is surfaced as-is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryText, err := readQuery(args, filePath)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			client := graph.NewClient(cfg.Graph.Endpoint, cfg.Graph.Timeout, slog.Default())
			results, err := client.Query(cmd.Context(), queryText)
			if err != nil {
				return err
			}

			return printResults(cmd, results)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read the query from a file")
	return cmd
}

func readQuery(args []string, filePath string) (string, error) {
	switch {
	case len(args) == 1 && filePath != "":
		return "", fmt.Errorf("query given both as argument and --file")
	case len(args) == 1:
		return args[0], nil
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read query file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("no query given")
	}
}

// printResults renders SELECT bindings as an aligned table.
func printResults(cmd *cobra.Command, results *graph.ResultSet) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(results.Head.Vars, "\t"))
	for _, binding := range results.Results.Bindings {
		row := make([]string, 0, len(results.Head.Vars))
		for _, v := range results.Head.Vars {
			row = append(row, binding[v].Value)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", faint(fmt.Sprintf("%d result(s)", len(results.Results.Bindings))))
	return nil
}
