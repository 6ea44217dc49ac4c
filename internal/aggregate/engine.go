package aggregate

import (
	"context"
	"fmt"

	"github.com/existflow/credboard/internal/logger"
	"github.com/existflow/credboard/internal/model"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Source is the remote data the engine aggregates
type Source interface {
	FetchSections(ctx context.Context) ([]model.Section, error)
	FetchCredentials(ctx context.Context, sectionID int64) ([]model.Credential, error)
	FetchAttachments(ctx context.Context, projectID int64) ([]model.Attachment, error)
}

// Options configures an Engine
type Options struct {
	// Concurrency bounds parallel fetches within a phase; 1 or less is
	// sequential.
	Concurrency int
	// Cache is shared across passes; a fresh one is created when nil.
	Cache  *AttachmentCache
	Logger *logger.Logger
}

// Engine runs aggregation passes: sections -> credentials -> attachments
type Engine struct {
	src         Source
	cache       *AttachmentCache
	concurrency int
	log         *logger.Logger
}

// New creates an engine reading from src
func New(src Source, opts Options) *Engine {
	e := &Engine{
		src:         src,
		cache:       opts.Cache,
		concurrency: opts.Concurrency,
		log:         opts.Logger,
	}
	if e.cache == nil {
		e.cache = NewAttachmentCache()
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	if e.log == nil {
		e.log = logger.WithFields(logger.F("component", "aggregate"))
	}
	return e
}

// Cache returns the attachment cache shared by the engine's passes
func (e *Engine) Cache() *AttachmentCache {
	return e.cache
}

// Load fetches the section list and aggregates all of it
func (e *Engine) Load(ctx context.Context) (*View, error) {
	sections, err := e.src.FetchSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections: %w", err)
	}
	return e.Aggregate(ctx, sections)
}

// Section aggregates a single section, as the detail screen does
func (e *Engine) Section(ctx context.Context, section model.Section) (*View, error) {
	return e.Aggregate(ctx, []model.Section{section})
}

// sectionResult is the outcome of phase one for one section
type sectionResult struct {
	creds []model.Credential
	err   error
}

// Aggregate runs one pass over sections. Fetch failures are recorded in the
// view and do not stop the pass. The only error returned is the context's,
// in which case no view is produced.
func (e *Engine) Aggregate(ctx context.Context, sections []model.Section) (*View, error) {
	view := &View{
		PassID:      uuid.NewString(),
		Generation:  GenerationFrom(ctx),
		Sections:    append([]model.Section(nil), sections...),
		Credentials: make(map[int64][]Enriched, len(sections)),
		Attachments: make(map[int64][]model.Attachment),
	}
	log := e.log.WithFields(logger.F("pass", view.PassID), logger.F("generation", view.Generation))
	log.Debug("Aggregation started", logger.F("sections", len(sections)))

	// Phase 1: credentials per section
	results := make([]sectionResult, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, s := range sections {
		i, s := i, s
		g.Go(func() error {
			creds, err := e.src.FetchCredentials(gctx, s.ID)
			results[i] = sectionResult{creds: creds, err: err}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		log.Debug("Aggregation cancelled", logger.F("phase", "credentials"))
		return nil, err
	}

	// Phase 2: distinct projects, first-seen order
	seen := make(map[int64]bool)
	for i, s := range sections {
		r := results[i]
		if r.err != nil {
			log.Warn("Failed to load credentials", logger.F("section", s.ID), logger.F("error", r.err))
			view.Failures = append(view.Failures, Failure{
				Resource: ResourceCredentials, ID: s.ID, Name: s.Title, Err: r.err,
			})
			continue
		}
		for _, c := range r.creds {
			if !seen[c.ProjectID] {
				seen[c.ProjectID] = true
				view.Projects = append(view.Projects, c.Project())
			}
		}
	}

	// Phase 3: attachments once per project
	attResults := make([]attachmentResult, len(view.Projects))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, p := range view.Projects {
		i, p := i, p
		g.Go(func() error {
			atts, hit, err := e.cache.Load(gctx, p.ID, e.src.FetchAttachments)
			attResults[i] = attachmentResult{atts: atts, hit: hit, err: err}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		log.Debug("Aggregation cancelled", logger.F("phase", "attachments"))
		return nil, err
	}

	hits := 0
	for i, p := range view.Projects {
		r := attResults[i]
		if r.err != nil {
			log.Warn("Failed to load attachments", logger.F("project", p.ID), logger.F("error", r.err))
			view.Failures = append(view.Failures, Failure{
				Resource: ResourceAttachments, ID: p.ID, Name: p.Name, Err: r.err,
			})
			continue
		}
		if r.hit {
			hits++
		}
		view.Attachments[p.ID] = r.atts
	}

	// Phase 4: enrich
	for i, s := range sections {
		if results[i].err != nil {
			continue
		}
		enriched := make([]Enriched, len(results[i].creds))
		for j, c := range results[i].creds {
			enriched[j] = Enriched{Credential: c, Attachments: view.Attachments[c.ProjectID]}
		}
		view.Credentials[s.ID] = enriched
	}

	log.Info("Aggregation finished",
		logger.F("sections", len(sections)),
		logger.F("projects", len(view.Projects)),
		logger.F("cache_hits", hits),
		logger.F("failures", len(view.Failures)))

	return view, nil
}

type attachmentResult struct {
	atts []model.Attachment
	hit  bool
	err  error
}
