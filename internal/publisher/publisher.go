package publisher

import (
	"context"
	"errors"
	"fmt"

	"wakasvg/internal/generator"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ErrNotFound is returned by a Store when the file does not exist yet.
var ErrNotFound = errors.New("file not found in remote store")

// File is a remote document with its decoded content and revision token.
type File struct {
	Path    string
	Content string
	SHA     string
}

// Store is the remote repository holding the managed document.
type Store interface {
	GetFile(ctx context.Context, path string) (*File, error)
	// UpdateFile must reject the write when sha no longer names the current revision.
	UpdateFile(ctx context.Context, path, message string, content []byte, sha string) error
	CreateFile(ctx context.Context, path, message string, content []byte) error
}

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
)

type Result struct {
	Outcome Outcome
	Path    string
	Bytes   int
	DryRun  bool
}

type Options struct {
	Path          string
	CommitMessage string
	Markers       generator.Markers
	BarWidth      int
	DryRun        bool
}

type Publisher struct {
	store  Store
	opts   Options
	logger *zap.Logger
}

func NewPublisher(store Store, opts Options, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{store: store, opts: opts, logger: logger}
}

// Publish writes stats into the remote document. An existing document has its
// managed region replaced and is written back only when the bytes changed; a
// missing document is created from scratch.
func (p *Publisher) Publish(ctx context.Context, stats string) (Result, error) {
	res := Result{Path: p.opts.Path, DryRun: p.opts.DryRun}

	current, err := p.store.GetFile(ctx, p.opts.Path)
	if errors.Is(err, ErrNotFound) {
		return p.create(ctx, stats, res)
	}
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", p.opts.Path, err)
	}

	updated, err := generator.Splice(current.Content, stats, p.opts.Markers)
	if err != nil {
		return res, fmt.Errorf("failed to update %s: %w", current.Path, err)
	}
	res.Bytes = len(updated)

	if updated == current.Content {
		res.Outcome = OutcomeUnchanged
		p.logger.Info("Document unchanged, skipping write", zap.String("path", current.Path))
		return res, nil
	}

	res.Outcome = OutcomeUpdated
	if p.opts.DryRun {
		p.logger.Info("Dry run, would update document",
			zap.String("path", current.Path),
			zap.String("size", humanize.Bytes(uint64(len(updated)))))
		return res, nil
	}

	if err := p.store.UpdateFile(ctx, current.Path, p.opts.CommitMessage, []byte(updated), current.SHA); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", current.Path, err)
	}
	p.logger.Info("Document updated",
		zap.String("path", current.Path),
		zap.String("previous_sha", current.SHA),
		zap.String("size", humanize.Bytes(uint64(len(updated)))))
	return res, nil
}

func (p *Publisher) create(ctx context.Context, stats string, res Result) (Result, error) {
	doc := generator.BuildFresh(stats, p.opts.Markers, p.opts.BarWidth)
	res.Outcome = OutcomeCreated
	res.Bytes = len(doc)

	if p.opts.DryRun {
		p.logger.Info("Dry run, would create document",
			zap.String("path", p.opts.Path),
			zap.String("size", humanize.Bytes(uint64(len(doc)))))
		return res, nil
	}

	if err := p.store.CreateFile(ctx, p.opts.Path, p.opts.CommitMessage, []byte(doc)); err != nil {
		return res, fmt.Errorf("failed to create %s: %w", p.opts.Path, err)
	}
	p.logger.Info("Document created",
		zap.String("path", p.opts.Path),
		zap.String("size", humanize.Bytes(uint64(len(doc)))))
	return res, nil
}
