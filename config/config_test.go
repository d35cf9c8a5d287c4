package config_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slop-at/slop/config"
)

func validConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Repo.Remote = "you/slops"
	cfg.Author.Handle = "you"
	return cfg
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateMissingKeys(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantKey string
	}{
		{"missing graph endpoint", func(c *config.Config) { c.Graph.Endpoint = "" }, "graph.endpoint"},
		{"missing remote", func(c *config.Config) { c.Repo.Remote = "" }, "repo.remote"},
		{"missing author", func(c *config.Config) { c.Author.Handle = "" }, "author.handle"},
		{"bad threshold", func(c *config.Config) { c.Extractor.Threshold = 1.5 }, "extractor.threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *config.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := validConfig()
	cfg.Graph.Endpoint = "http://localhost:7878/sparql"
	cfg.Graph.Timeout = 10 * time.Second
	cfg.Extractor.Endpoint = "http://localhost:9090/extract"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMergePrecedence(t *testing.T) {
	base := config.DefaultConfig()
	base.Merge(&config.Config{
		Repo:   config.RepoConfig{Remote: "you/slops"},
		Author: config.AuthorConfig{Handle: "you"},
	})

	assert.Equal(t, "you/slops", base.Repo.Remote)
	assert.Equal(t, "you", base.Author.Handle)
	// Untouched fields keep defaults.
	assert.Equal(t, "main", base.Repo.Branch)
	assert.Equal(t, 0.5, base.Extractor.Threshold)

	// A later layer overrides.
	base.Merge(&config.Config{Repo: config.RepoConfig{Branch: "trunk"}})
	assert.Equal(t, "trunk", base.Repo.Branch)
	assert.Equal(t, "you/slops", base.Repo.Remote)
}

func TestMergeNil(t *testing.T) {
	cfg := validConfig()
	cfg.Merge(nil)
	require.NoError(t, cfg.Validate())
}
