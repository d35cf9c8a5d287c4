package config

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "slop.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/slop"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
	// DataDirName is the default directory holding cloned slop repos.
	DataDirName = ".slop-at"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/slop/config.yaml)
// 3. Project config (slop.yaml in current or parent directories)
// 4. Environment variables (SLOP_GRAPH_ENDPOINT, SLOP_REPO_REMOTE, SLOP_AUTHOR)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	}

	config.Merge(envConfig())

	// Author identity falls back to git config.
	if config.Author.Handle == "" {
		config.Author.Handle = gitConfigHandle()
	}
	if config.Author.Name == "" {
		config.Author.Name = gitConfigValue("user.name")
	}

	// Default working tree location under ~/.slop-at/<remote>.
	if config.Repo.Path == "" && config.Repo.Remote != "" {
		if home, err := os.UserHomeDir(); err == nil {
			config.Repo.Path = filepath.Join(home, DataDirName, config.Repo.Remote)
		}
	}

	return config, nil
}

// envConfig builds an overlay config from environment variables.
func envConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Endpoint: os.Getenv("SLOP_GRAPH_ENDPOINT"),
		},
		Repo: RepoConfig{
			Remote: os.Getenv("SLOP_REPO_REMOTE"),
			Path:   os.Getenv("SLOP_REPO_PATH"),
		},
		Author: AuthorConfig{
			Handle: os.Getenv("SLOP_AUTHOR"),
		},
		Extractor: ExtractorConfig{
			Endpoint: os.Getenv("SLOP_EXTRACTOR_ENDPOINT"),
		},
	}
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist.
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for slop.yaml in current and parent directories.
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// gitConfigHandle derives a user handle from the global git email.
func gitConfigHandle() string {
	email := gitConfigValue("user.email")
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return ""
}

// gitConfigValue reads a global git config value, empty on any failure.
func gitConfigValue(key string) string {
	cmd := exec.Command("git", "config", "--global", key)
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
