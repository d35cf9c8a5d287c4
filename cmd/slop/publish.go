package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slop-at/slop/publish"
)

func publishCmd(configPath *string) *cobra.Command {
	var (
		title    string
		tags     []string
		filePath string
		resumeID string
	)

	cmd := &cobra.Command{
		Use:   "publish --title <title> [content]",
		Short: "Publish a note to the repository and the graph",
		Long: `Publish a note. Content comes from the argument, from a file via
--file, or from stdin when neither is given.

Re-invoking with --id resumes a partially published note instead of
creating a new one; no new content is accepted in that case.`,
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

			if resumeID != "" {
				if title != "" || filePath != "" || len(args) > 0 {
					return errors.New("--id resumes an existing note; it takes no new content")
				}
				receipt, err := coord.Resume(cmd.Context(), resumeID)
				if err != nil {
					return reportFailure(cmd, err)
				}
				printReceipt(cmd, receipt)
				return nil
			}

			if title == "" {
				return errors.New("--title is required")
			}
			content, err := readContent(args, filePath)
			if err != nil {
				return err
			}

			receipt, err := coord.Publish(cmd.Context(), publish.Request{
				Title:   title,
				Content: content,
				Tags:    tags,
			})
			if err != nil {
				return reportFailure(cmd, err)
			}

			printReceipt(cmd, receipt)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title of the note")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag for the note (repeatable)")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read content from a file")
	cmd.Flags().StringVar(&resumeID, "id", "", "Resume a partially published note by identifier")
	return cmd
}

// readContent resolves the note body from argument, file, or stdin.
func readContent(args []string, filePath string) (string, error) {
	switch {
	case len(args) == 1 && filePath != "":
		return "", errors.New("content given both as argument and --file")
	case len(args) == 1:
		return args[0], nil
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read content file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

// printReceipt renders a successful publish or resume.
func printReceipt(cmd *cobra.Command, receipt *publish.Receipt) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", success("published"), receipt.ID)
	fmt.Fprintf(out, "  %s %s @ %s\n", faint("commit"), receipt.CommitHash, receipt.Branch)
	fmt.Fprintf(out, "  %s %s\n", faint("path"), receipt.Path)
	if len(receipt.Entities) > 0 {
		names := make([]string, 0, len(receipt.Entities))
		for _, e := range receipt.Entities {
			names = append(names, fmt.Sprintf("%s (%s)", e.Text, e.Type))
		}
		fmt.Fprintf(out, "  %s %s\n", faint("entities"), strings.Join(names, ", "))
	}
	for _, w := range receipt.Warnings {
		fmt.Fprintf(out, "%s %s\n", warning("warning:"), w)
	}
}

// reportFailure renders a publish failure with its resumable action.
func reportFailure(cmd *cobra.Command, err error) error {
	var pubErr *publish.Error
	if errors.As(err, &pubErr) && pubErr.Stage.Recoverable() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warning("partial:"), pubErr.ResumeAction())
	}
	return err
}
