// Package repo wraps the version-controlled working tree that holds
// published slops: write, stage/commit/push, and read-back.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/slop-at/slop/document"
)

// Store is the local store adapter for one working tree. The tree is a
// singly-writable resource: staging and committing are serialized by a
// per-store mutex, while reads take no lock.
type Store struct {
	root   string
	branch string
	logger *slog.Logger

	mu sync.Mutex
}

// CommitResult describes a commit created in the working tree.
type CommitResult struct {
	// Hash is the short commit hash.
	Hash string
	// Branch is the branch the commit lives on.
	Branch string
	// Pushed reports whether the commit reached the remote.
	Pushed bool
}

// NewStore creates a store for the working tree at root.
func NewStore(root, branch string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if branch == "" {
		branch = "main"
	}
	return &Store{root: root, branch: branch, logger: logger}
}

// Root returns the working tree path.
func (s *Store) Root() string { return s.root }

// Write renders the document into the working tree at the path derived from
// its identity. Repeated writes with the same identity overwrite in place.
// Returns the repository-relative path.
func (s *Store) Write(doc document.Document) (string, error) {
	relPath := document.PathFor(doc.ID)
	absPath := filepath.Join(s.root, filepath.FromSlash(relPath))

	text, err := doc.Render()
	if err != nil {
		return "", &WriteError{Path: relPath, err: err}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", &WriteError{Path: relPath, err: err}
	}
	if err := os.WriteFile(absPath, []byte(text), 0o644); err != nil {
		return "", &WriteError{Path: relPath, err: err}
	}

	s.logger.Debug("Wrote document", slog.String("path", relPath))
	return relPath, nil
}

// Read loads and parses the document for an identity. Returns ErrNotFound
// when no document exists at the derived path.
func (s *Store) Read(id string) (document.Document, error) {
	absPath := filepath.Join(s.root, filepath.FromSlash(document.PathFor(id)))

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return document.Document{}, ErrNotFound
		}
		return document.Document{}, fmt.Errorf("read document: %w", err)
	}
	return document.Parse(string(data))
}

// List returns the repository-relative paths of published slops matching a
// glob pattern (default: all slops).
func (s *Store) List(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "slops/*.md"
	}

	matches, err := doublestar.Glob(os.DirFS(s.root), pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// CommitAndPush stages the given paths, commits, and pushes to the remote
// branch. On a push failure the returned CommitResult still carries the
// local commit hash so the caller can retry the push alone; the error then
// classifies the failure as PushRejectedError or PushTransportError.
func (s *Store) CommitAndPush(ctx context.Context, paths []string, message string) (CommitResult, error) {
	result, err := s.commit(ctx, paths, message)
	if err != nil {
		return CommitResult{}, err
	}

	if err := s.push(ctx); err != nil {
		return result, err
	}
	result.Pushed = true
	return result, nil
}

// Commit stages and commits the given paths without pushing. Callers that
// need to record durable state between the commit and the push use this
// with Push instead of CommitAndPush.
func (s *Store) Commit(ctx context.Context, paths []string, message string) (CommitResult, error) {
	return s.commit(ctx, paths, message)
}

// commit stages and commits under the tree lock.
func (s *Store) commit(ctx context.Context, paths []string, message string) (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isGitRepo() {
		return CommitResult{}, &CommitError{err: fmt.Errorf("not a git repository: %s", s.root)}
	}

	if err := s.checkUnrelatedStaged(ctx, paths); err != nil {
		return CommitResult{}, err
	}

	for _, p := range paths {
		if _, err := s.runGit(ctx, "add", "--", p); err != nil {
			return CommitResult{}, &CommitError{err: err}
		}
	}

	staged, _ := s.runGit(ctx, "diff", "--cached", "--name-only")
	if strings.TrimSpace(staged) == "" {
		// Nothing changed: the identical document is already committed.
		// Treat as success so a retried publish converges.
		hash, err := s.headHash(ctx)
		if err != nil {
			return CommitResult{}, &CommitError{err: err}
		}
		s.logger.Debug("No staged changes, reusing HEAD", slog.String("hash", hash))
		return CommitResult{Hash: hash, Branch: s.branch}, nil
	}

	if _, err := s.runGit(ctx, "commit", "-m", message); err != nil {
		return CommitResult{}, &CommitError{err: err}
	}

	hash, err := s.headHash(ctx)
	if err != nil {
		return CommitResult{}, &CommitError{err: err}
	}

	s.logger.Info("Committed", slog.String("hash", hash), slog.String("message", message))
	return CommitResult{Hash: hash, Branch: s.branch}, nil
}

// Push pushes the current branch to the configured remote. Used both inside
// CommitAndPush and standalone when resuming from a recorded local commit.
func (s *Store) Push(ctx context.Context) error {
	return s.push(ctx)
}

func (s *Store) push(ctx context.Context) error {
	output, err := s.runGit(ctx, "push", "origin", s.branch)
	if err == nil {
		s.logger.Info("Pushed", slog.String("branch", s.branch))
		return nil
	}

	combined := output + err.Error()
	if strings.Contains(combined, "[rejected]") ||
		strings.Contains(combined, "non-fast-forward") ||
		strings.Contains(combined, "fetch first") {
		return &PushRejectedError{Output: strings.TrimSpace(output)}
	}
	return &PushTransportError{err: err}
}

// HeadHash returns the short hash of the current HEAD.
func (s *Store) HeadHash(ctx context.Context) (string, error) {
	return s.headHash(ctx)
}

func (s *Store) headHash(ctx context.Context) (string, error) {
	output, err := s.runGit(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// checkUnrelatedStaged refuses to commit when the index already holds
// changes outside the paths being published.
func (s *Store) checkUnrelatedStaged(ctx context.Context, paths []string) error {
	output, err := s.runGit(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return &CommitError{err: err}
	}

	ours := make(map[string]bool, len(paths))
	for _, p := range paths {
		ours[p] = true
	}

	var unrelated []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" || ours[line] {
			continue
		}
		unrelated = append(unrelated, line)
	}
	if len(unrelated) > 0 {
		return &DirtyTreeError{Paths: unrelated}
	}
	return nil
}

// Clone clones a remote slop repository into dest. Used by first-time setup.
func Clone(ctx context.Context, remoteURL, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create clone parent: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", remoteURL, dest)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("clone %s: %w: %s", remoteURL, err, string(output))
	}
	return nil
}

// runGit executes a git command in the working tree.
func (s *Store) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.root

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// isGitRepo checks whether the root is inside a git repository.
func (s *Store) isGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = s.root
	return cmd.Run() == nil
}
