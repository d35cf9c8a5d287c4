package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slop-at/slop/config"
	"github.com/slop-at/slop/document"
	"github.com/slop-at/slop/extract"
	"github.com/slop-at/slop/identity"
	"github.com/slop-at/slop/repo"
	"github.com/slop-at/slop/statement"
)

// ErrInvalidRequest reports a submission that fails validation before any
// identity is allocated.
var ErrInvalidRequest = errors.New("invalid publish request")

// Request is a publish submission.
type Request struct {
	Title   string
	Content string
	Tags    []string
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is empty", ErrInvalidRequest)
	}
	return nil
}

// Receipt is the success response for a publish or resume.
type Receipt struct {
	ID         string
	State      State
	Path       string
	CommitHash string
	Branch     string
	Created    time.Time
	Entities   []extract.Entity
	// Warnings records non-fatal degradations, such as publishing with an
	// empty entity set because the extractor was unreachable.
	Warnings []string
}

// Graph is the statement sink the coordinator publishes to.
type Graph interface {
	Publish(ctx context.Context, set *statement.Set) error
}

// Coordinator drives a publish submission through the full sequence of
// side effects. It is the only component that writes to both the working
// tree and the graph store, and it serializes nothing itself: the repo
// store locks the tree, and graph inserts are idempotent.
type Coordinator struct {
	cfg         config.Config
	ids         *identity.Allocator
	extractor   extract.Extractor
	store       *repo.Store
	graph       Graph
	checkpoints *CheckpointStore
	logger      *slog.Logger
	now         func() time.Time
}

// NewCoordinator wires a coordinator from its collaborators. The
// checkpoint store lives inside the repo store's working tree.
func NewCoordinator(cfg config.Config, extractor extract.Extractor, store *repo.Store, g Graph, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if extractor == nil {
		extractor = extract.None{}
	}
	return &Coordinator{
		cfg:         cfg,
		ids:         identity.NewAllocator(),
		extractor:   extractor,
		store:       store,
		graph:       g,
		checkpoints: NewCheckpointStore(store.Root()),
		logger:      logger,
		now:         time.Now,
	}
}

// Publish runs a submission through allocation, build, local commit, push,
// and graph publication. On a partial failure the returned *Error names
// the furthest completed state; if that state is recoverable a checkpoint
// has been written and Resume completes the remainder.
func (c *Coordinator) Publish(ctx context.Context, req Request) (*Receipt, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	id, err := c.ids.Allocate()
	if err != nil {
		return nil, err
	}

	// One request ID correlates every log line and the checkpoint across
	// the multi-step operation, including later resumes.
	requestID := uuid.New().String()
	logger := c.logger.With(slog.String("request_id", requestID), slog.String("id", id))
	logger.Debug("Allocated identity")

	// Extraction failure degrades instead of blocking: the slop is
	// published with an empty entity set and a warning.
	var warnings []string
	entities, err := c.extractor.Extract(ctx, req.Content)
	if err != nil {
		if !extract.IsUnavailable(err) {
			return nil, failed(id, StateAllocated, err)
		}
		logger.Warn("Extraction unavailable, publishing without entities", slog.String("error", err.Error()))
		warnings = append(warnings, "entity extraction unavailable: "+err.Error())
		entities = nil
	}

	doc := document.New(id, req.Title, c.cfg.Author.Handle, c.now(), req.Tags, req.Content)
	set := statement.Derive(doc, entities, c.cfg.Repo.Remote, c.cfg.Repo.Branch)

	relPath, err := c.store.Write(doc)
	if err != nil {
		return nil, failed(id, StateBuilt, err)
	}

	commit, err := c.store.Commit(ctx, []string{relPath}, commitMessage(doc))
	if err != nil {
		// The write is on disk but uncommitted; a fresh publish of the
		// same submission is the safe path, not a resume.
		return nil, failed(id, StateBuilt, err)
	}

	cp := Checkpoint{
		ID:         id,
		RequestID:  requestID,
		State:      StateLocallyCommitted,
		Title:      doc.Title,
		CommitHash: commit.Hash,
		Branch:     commit.Branch,
		Entities:   entities,
		Warnings:   warnings,
		UpdatedAt:  c.now(),
	}
	if err := c.checkpoints.Save(cp); err != nil {
		c.logger.Warn("Checkpoint write failed", slog.String("id", id), slog.String("error", err.Error()))
	}

	receipt := &Receipt{
		ID:         id,
		Path:       relPath,
		CommitHash: commit.Hash,
		Branch:     commit.Branch,
		Created:    doc.Created,
		Entities:   entities,
		Warnings:   warnings,
	}
	return c.finish(ctx, receipt, cp, set)
}

// Resume completes a publication stranded at LocallyCommitted or Pushed.
// It re-derives the statement set from the persisted document and the
// checkpointed extraction result; the extractor is never consulted again.
func (c *Coordinator) Resume(ctx context.Context, id string) (*Receipt, error) {
	if !identity.Valid(id) {
		return nil, fmt.Errorf("%w: malformed identifier %q", ErrInvalidRequest, id)
	}

	cp, err := c.checkpoints.Load(id)
	if err != nil {
		return nil, err
	}

	doc, err := c.store.Read(id)
	if err != nil {
		return nil, failed(id, cp.State, fmt.Errorf("read persisted document: %w", err))
	}
	set := statement.Derive(doc, cp.Entities, c.cfg.Repo.Remote, c.cfg.Repo.Branch)

	receipt := &Receipt{
		ID:         id,
		Path:       document.PathFor(id),
		CommitHash: cp.CommitHash,
		Branch:     cp.Branch,
		Created:    doc.Created,
		Entities:   cp.Entities,
		Warnings:   cp.Warnings,
	}
	return c.finish(ctx, receipt, cp, set)
}

// finish drives a publication from LocallyCommitted to GraphPublished,
// updating the checkpoint at each transition and deleting it on success.
func (c *Coordinator) finish(ctx context.Context, receipt *Receipt, cp Checkpoint, set *statement.Set) (*Receipt, error) {
	if cp.State == StateLocallyCommitted {
		if err := c.store.Push(ctx); err != nil {
			c.recordFailure(cp, err)
			return nil, failed(cp.ID, StateLocallyCommitted, err)
		}
		cp.State = StatePushed
		cp.LastError = ""
		cp.UpdatedAt = c.now()
		if err := c.checkpoints.Save(cp); err != nil {
			c.logger.Warn("Checkpoint write failed", slog.String("id", cp.ID), slog.String("error", err.Error()))
		}
	}

	if err := c.graph.Publish(ctx, set); err != nil {
		c.recordFailure(cp, err)
		return nil, failed(cp.ID, StatePushed, err)
	}

	if err := c.checkpoints.Delete(cp.ID); err != nil {
		c.logger.Warn("Checkpoint delete failed", slog.String("id", cp.ID), slog.String("error", err.Error()))
	}

	receipt.State = StateGraphPublished
	c.logger.Info("Published",
		slog.String("id", cp.ID),
		slog.String("commit", receipt.CommitHash),
		slog.Int("entities", len(receipt.Entities)))
	return receipt, nil
}

// recordFailure persists the failure reason on the checkpoint so status
// output can show why a publication is stuck.
func (c *Coordinator) recordFailure(cp Checkpoint, cause error) {
	cp.LastError = cause.Error()
	cp.UpdatedAt = c.now()
	if err := c.checkpoints.Save(cp); err != nil {
		c.logger.Warn("Checkpoint write failed", slog.String("id", cp.ID), slog.String("error", err.Error()))
	}
}

// Status reports the publication state of an identity: GraphPublished when
// the document exists with no pending checkpoint, otherwise the
// checkpointed partial state.
func (c *Coordinator) Status(id string) (Checkpoint, error) {
	if !identity.Valid(id) {
		return Checkpoint{}, fmt.Errorf("%w: malformed identifier %q", ErrInvalidRequest, id)
	}

	cp, err := c.checkpoints.Load(id)
	if err == nil {
		return cp, nil
	}
	if !errors.Is(err, ErrNothingToResume) {
		return Checkpoint{}, err
	}

	doc, err := c.store.Read(id)
	if err != nil {
		return Checkpoint{}, err
	}
	return Checkpoint{ID: id, State: StateGraphPublished, Title: doc.Title, UpdatedAt: doc.Created}, nil
}

// Pending returns the checkpoints of all publications awaiting a resume.
func (c *Coordinator) Pending() ([]Checkpoint, error) {
	return c.checkpoints.List()
}

func commitMessage(doc document.Document) string {
	return fmt.Sprintf("Add slop %s: %s", doc.ID, doc.Title)
}
