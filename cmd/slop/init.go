package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slop-at/slop/config"
	"github.com/slop-at/slop/repo"
)

func initCmd(configPath *string) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init <owner/repo>",
		Short: "Clone your slop repository and write the user config",
		Long: `Set up publishing: clone the slop repository from the git host into
the local data directory and record it in the user config. Safe to re-run;
an existing clone is left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote := args[0]
			if !strings.Contains(remote, "/") {
				return fmt.Errorf("remote must be an owner/repo identifier, got %q", remote)
			}

			loader := config.NewLoader(slog.Default())
			if err := loader.EnsureUserConfig(); err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			cfg.Repo.Remote = remote
			if path != "" {
				cfg.Repo.Path = path
			}
			if cfg.Repo.Path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("resolve home directory: %w", err)
				}
				cfg.Repo.Path = filepath.Join(home, config.DataDirName, remote)
			}

			if _, err := os.Stat(cfg.Repo.Path); os.IsNotExist(err) {
				cloneURL := "https://github.com/" + remote + ".git"
				fmt.Fprintf(cmd.OutOrStdout(), "Cloning %s into %s\n", cloneURL, cfg.Repo.Path)
				if err := repo.Clone(cmd.Context(), cloneURL, cfg.Repo.Path); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Using existing clone at %s\n", cfg.Repo.Path)
			}

			if err := ensureStateIgnored(cfg.Repo.Path); err != nil {
				return err
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolve home directory: %w", err)
			}
			userConfigPath := filepath.Join(home, config.UserConfigDir, config.UserConfigFile)
			if err := cfg.SaveToFile(userConfigPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s configured %s\n", success("ok:"), remote)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Working tree location (default: ~/.slop-at/<owner/repo>)")
	return cmd
}

// ensureStateIgnored keeps the checkpoint directory out of version control.
func ensureStateIgnored(workTree string) error {
	gitignore := filepath.Join(workTree, ".gitignore")

	data, err := os.ReadFile(gitignore)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read .gitignore: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == ".slop/" {
			return nil
		}
	}

	text := string(data)
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	text += ".slop/\n"
	if err := os.WriteFile(gitignore, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write .gitignore: %w", err)
	}
	return nil
}
