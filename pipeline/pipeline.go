// Package pipeline drives documents from source text to assembled output:
// prompts are loaded or generated, residual work is planned against the
// images already on disk, rendered on a fresh worker pool and assembled.
//
// Documents are processed one at a time. A failed document does not stop
// the batch unless Options.FailFast is set.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"longsd/assembler"
	"longsd/core"
	"longsd/document"
	"longsd/logging"
	"longsd/metrics"
	"longsd/planner"
	"longsd/prompts"
	"longsd/renderpool"
	"longsd/sdruntime"
)

// ErrPartialRender marks a document assembled without all of its images.
var ErrPartialRender = errors.New("pipeline: some images failed to render")

// Options controls a Runner.
type Options struct {
	Layout    document.Layout
	Overwrite bool // regenerate prompts even when cached
	FailFast  bool // stop the batch at the first failed document
	Pool      renderpool.Config
}

// OptionsFromConfig maps the run configuration onto Options.
func OptionsFromConfig(cfg *core.Config) Options {
	params := sdruntime.DefaultParams()
	params.Width = cfg.SDImageSize
	params.Height = cfg.SDImageSize
	params.Steps = cfg.SDInferenceSteps
	params.CFGScale = cfg.SDGuidanceScale
	params.NegativePrompt = cfg.SDNegativePrompt

	return Options{
		Layout:    document.Layout{Root: cfg.Root},
		Overwrite: cfg.OverwritePrompts,
		FailFast:  cfg.FailFast,
		Pool: renderpool.Config{
			Workers: cfg.Workers,
			Model: sdruntime.DeviceConfig{
				Backend:   cfg.SDBackend,
				ModelPath: cfg.SDModelPath,
			},
			Devices: cfg.SDDevices,
			Params:  params,
			Timeout: cfg.SDTimeout(),
		},
	}
}

// Runner processes batches of documents.
type Runner struct {
	opts      Options
	client    prompts.CompletionClient
	load      sdruntime.Loader
	lister    planner.Lister
	planner   *planner.Planner
	assembler *assembler.Assembler
	store     *metrics.Store
	logger    *logging.Logger
}

// NewRunner returns a Runner. client serves prompt completions and load
// creates one model per render worker. Tasks and documents are recorded
// in store.
func NewRunner(opts Options, client prompts.CompletionClient, load sdruntime.Loader, store *metrics.Store, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	lister := planner.OSLister{}
	return &Runner{
		opts:      opts,
		client:    client,
		load:      load,
		lister:    lister,
		planner:   planner.New(lister, logger),
		assembler: assembler.New(logger),
		store:     store,
		logger:    logger.Named("pipeline"),
	}
}

// Run processes names in order. It returns nil only if every document
// succeeded; otherwise the errors of the failed documents are joined.
// Cancelling ctx stops the batch before the next document.
func (r *Runner) Run(ctx context.Context, names []string) error {
	var errs []error

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Batch cancelled",
				zap.Int("remaining", len(names)-i),
				zap.Error(err))
			errs = append(errs, err)
			break
		}

		rec, err := r.runDocument(ctx, name)
		r.store.RecordDocument(rec)
		if err == nil {
			continue
		}

		errs = append(errs, fmt.Errorf("%s: %w", name, err))
		r.logger.Error("Document failed",
			logging.Document(name),
			zap.String("state", rec.State),
			zap.String("error_code", core.GetErrorCode(err)),
			zap.Error(err))

		if r.opts.FailFast {
			if i+1 < len(names) {
				r.logger.Warn("Stopping batch after failure", zap.Int("skipped_documents", len(names)-i-1))
			}
			break
		}
	}

	if len(errs) == 0 {
		r.logger.Info("All complete", zap.Int("documents", len(names)))
		return nil
	}
	return errors.Join(errs...)
}

// runDocument takes one document through every state. The returned record
// is filled in as far as the document got.
func (r *Runner) runDocument(ctx context.Context, name string) (metrics.DocumentRecord, error) {
	start := time.Now()
	rec := metrics.DocumentRecord{Name: name, Status: metrics.StatusError}
	logger := r.logger.With(logging.Document(name))

	enter := func(s State) {
		rec.State = string(s)
		logger.Info("Document state", logging.Stage(string(s)))
	}
	finish := func(err error) (metrics.DocumentRecord, error) {
		rec.Duration = time.Since(start)
		if err != nil {
			rec.ErrorMsg = err.Error()
		}
		return rec, err
	}

	enter(StateInit)
	doc := document.Resolve(r.opts.Layout, name)
	if err := doc.Prepare(); err != nil {
		return finish(err)
	}
	text, err := doc.LoadText()
	if err != nil {
		return finish(err)
	}
	logger.Debug("Loaded text",
		zap.String("path", doc.TextPath),
		zap.Int("estimated_tokens", document.EstimateTokens(text)))

	generator := prompts.NewGenerator(recordingClient{
		next:      r.client,
		collector: r.store,
		document:  name,
	}, logger)
	cache := prompts.NewCache(generator.Generate, logger)

	sp, err := cache.LoadOrCreate(ctx, doc, text, r.opts.Overwrite)
	if err != nil {
		return finish(err)
	}
	enter(StatePromptsReady)

	plan, err := r.planner.Plan(sp, doc.SaveDir)
	if err != nil {
		return finish(err)
	}
	rec.Planned = len(plan.Units)
	for _, s := range plan.Completed {
		rec.Skipped = append(rec.Skipped, string(s))
	}
	enter(StateWorkPlanned)

	for _, u := range plan.Units {
		logger.Debug("Work unit", logging.Section(string(u.Section)), logging.Prompt(u.Prompt))
	}

	pool, err := renderpool.New(r.opts.Pool, r.load,
		renderpool.WithLogger(logger),
		renderpool.WithCollector(r.store),
		renderpool.WithDocument(name))
	if err != nil {
		return finish(err)
	}
	outcomes, err := pool.RenderAll(ctx, plan.Units)
	rec.Rendered = len(outcomes) - outcomes.Failed()
	rec.Failed = outcomes.Failed()
	if err != nil {
		return finish(err)
	}
	enter(StateRendered)

	// The document covers every finished image, not only this run's.
	figures, err := renderpool.Collect(r.lister, doc.SaveDir, sp)
	if err != nil {
		return finish(err)
	}
	if len(figures) == 0 {
		logger.Warn("No images to assemble")
	} else {
		out, err := r.assembler.Assemble(doc, figures)
		if err != nil {
			return finish(err)
		}
		rec.Output = out.HTML
	}
	enter(StateAssembled)

	enter(StateDone)
	if rec.Failed > 0 {
		rec.Status = metrics.StatusPartial
		return finish(fmt.Errorf("%w: %d of %d: %w", ErrPartialRender, rec.Failed, rec.Planned, outcomes.Err()))
	}
	rec.Status = metrics.StatusSuccess
	return finish(nil)
}
