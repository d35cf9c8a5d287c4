package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slop-at/slop/extract"
)

// Checkpoint is the durable record of a partial publication. It is written
// the moment a slop reaches LocallyCommitted and deleted when it reaches
// GraphPublished, so its presence means exactly one thing: this identity
// has a pending side effect.
//
// The extraction result is stored in full. Resuming re-derives the
// statement set from the persisted document and these entities, never by
// calling the extractor again.
type Checkpoint struct {
	ID         string           `yaml:"id"`
	RequestID  string           `yaml:"request_id,omitempty"`
	State      State            `yaml:"state"`
	Title      string           `yaml:"title"`
	CommitHash string           `yaml:"commit_hash,omitempty"`
	Branch     string           `yaml:"branch,omitempty"`
	Entities   []extract.Entity `yaml:"entities,omitempty"`
	Warnings   []string         `yaml:"warnings,omitempty"`
	LastError  string           `yaml:"last_error,omitempty"`
	UpdatedAt  time.Time        `yaml:"updated_at"`
}

// CheckpointStore persists checkpoints under <worktree>/.slop/state/, one
// YAML file per identity. The directory lives inside the working tree but
// is never staged or committed.
type CheckpointStore struct {
	dir string
}

// NewCheckpointStore creates a checkpoint store rooted in a working tree.
func NewCheckpointStore(workTree string) *CheckpointStore {
	return &CheckpointStore{dir: filepath.Join(workTree, ".slop", "state")}
}

func (s *CheckpointStore) pathFor(id string) string {
	return filepath.Join(s.dir, id+".yaml")
}

// Save writes or replaces the checkpoint for an identity.
func (s *CheckpointStore) Save(cp Checkpoint) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}

	data, err := yaml.Marshal(cp)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	if err := os.WriteFile(s.pathFor(cp.ID), data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// Load reads the checkpoint for an identity. Returns ErrNothingToResume
// when none exists.
func (s *CheckpointStore) Load(id string) (Checkpoint, error) {
	data, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Checkpoint{}, ErrNothingToResume
		}
		return Checkpoint{}, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("parse checkpoint %s: %w", id, err)
	}
	return cp, nil
}

// Delete removes the checkpoint for an identity. Deleting a checkpoint
// that does not exist is not an error.
func (s *CheckpointStore) Delete(id string) error {
	err := os.Remove(s.pathFor(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}

// List returns all pending checkpoints, oldest first.
func (s *CheckpointStore) List() ([]Checkpoint, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	var out []Checkpoint
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		cp, err := s.Load(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}
