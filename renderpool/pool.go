package renderpool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"longsd/logging"
	"longsd/metrics"
	"longsd/planner"
	"longsd/sdruntime"
)

// Config describes the workers of a Pool.
type Config struct {
	Workers int
	Model   sdruntime.DeviceConfig // backend and model path; Device is overridden
	Devices []int                  // assigned round-robin to workers
	Params  sdruntime.GenerateParams
	Timeout time.Duration // per render; 0 means none
}

// Pool renders units on Config.Workers workers.
type Pool struct {
	cfg       Config
	load      sdruntime.Loader
	logger    *logging.Logger
	collector metrics.Collector
	document  string
	now       func() time.Time
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Pool) { p.logger = logger.Named("renderpool") }
}

// WithCollector records a metrics.TaskRecord per rendered unit.
func WithCollector(c metrics.Collector) Option {
	return func(p *Pool) { p.collector = c }
}

// WithDocument tags logs and task records with a document name.
func WithDocument(name string) Option {
	return func(p *Pool) { p.document = name }
}

// WithClock replaces time.Now, which stamps file names.
func WithClock(now func() time.Time) Option {
	return func(p *Pool) { p.now = now }
}

// New validates cfg and returns a Pool. Models are not loaded until RenderAll.
func New(cfg Config, load sdruntime.Loader, opts ...Option) (*Pool, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, cfg.Workers)
	}
	if load == nil {
		return nil, fmt.Errorf("%w: nil loader", ErrInvalidConfig)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}

	p := &Pool{
		cfg:       cfg,
		load:      load,
		logger:    logging.NewNopLogger(),
		collector: metrics.Discard,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RenderAll renders every unit and blocks until all are done. The returned
// Outcomes has one entry per unit, in unit order, even when err is non-nil.
//
// Cancelling ctx stops dispatch; renders already running finish. No worker
// is started (and no model loaded) for an empty unit list. At most
// len(units) workers are started.
//
// Workers that fail to load their model drop out and the rest drain the
// queue. Load failures are returned only when they left units undispatched.
func (p *Pool) RenderAll(ctx context.Context, units []planner.WorkUnit) (Outcomes, error) {
	outcomes := make(Outcomes, len(units))
	if len(units) == 0 {
		return outcomes, nil
	}

	for i, u := range units {
		outcomes[i].Unit = u
	}

	queue := make(chan int, len(units))
	for i := range units {
		queue <- i
	}
	close(queue)

	workers := min(p.cfg.Workers, len(units))
	devices := sdruntime.AssignDevices(p.cfg.Model, p.cfg.Devices, workers)
	dispatched := make([]bool, len(units))

	var (
		mu       sync.Mutex
		loadErrs []error
		loaded   atomic.Int32
	)

	p.logger.Info("Starting render workers",
		logging.Document(p.document),
		zap.Int("workers", workers),
		zap.Int("units", len(units)))

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		id := w + 1
		device := devices[w]

		g.Go(func() error {
			// Accelerator runtimes bind state to the calling thread.
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			model, err := p.load(device)
			if err != nil {
				err = fmt.Errorf("%w: worker %d (device %d): %w", ErrWorkerInit, id, device.Device, err)
				p.logger.Warn("Worker failed to load model", logging.Worker(id), zap.Error(err))
				mu.Lock()
				loadErrs = append(loadErrs, err)
				mu.Unlock()
				return err
			}
			loaded.Add(1)
			defer func() {
				if err := model.Close(); err != nil {
					p.logger.Warn("Failed to release model", logging.Worker(id), zap.Error(err))
				}
			}()

			p.logger.Debug("Worker ready", logging.Worker(id), zap.Int("device", device.Device))

			for idx := range queue {
				if ctx.Err() != nil {
					return nil
				}
				// Each index is received by exactly one worker.
				dispatched[idx] = true
				outcomes[idx] = p.render(ctx, id, model, units[idx])
			}
			return nil
		})
	}
	loadErr := g.Wait()

	var cause error
	switch {
	case ctx.Err() != nil:
		cause = ctx.Err()
	case loadErr == nil:
	case loaded.Load() == 0 || slices.Contains(dispatched, false):
		cause = errors.Join(loadErrs...)
	default:
		p.logger.Warn("Rendered on fewer workers",
			logging.Document(p.document),
			zap.Int("loaded", int(loaded.Load())),
			zap.Int("workers", workers),
			zap.Error(errors.Join(loadErrs...)))
	}

	for i := range outcomes {
		if !dispatched[i] {
			outcomes[i].Err = fmt.Errorf("%w: %w", ErrNotDispatched, cause)
		}
	}

	p.logger.Info("Render workers finished",
		logging.Document(p.document),
		zap.Int("rendered", len(units)-outcomes.Failed()),
		zap.Int("failed", outcomes.Failed()))

	return outcomes, cause
}

func (p *Pool) render(ctx context.Context, worker int, model sdruntime.Model, unit planner.WorkUnit) Outcome {
	start := time.Now()

	// Renders run to completion once started; only the per-render timeout bounds them.
	rctx := context.WithoutCancel(ctx)
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(rctx, p.cfg.Timeout)
		defer cancel()
	}

	params := p.cfg.Params
	params.Prompt = unit.Prompt

	out := Outcome{Unit: unit, Worker: worker}
	data, err := model.Generate(rctx, params)
	if err == nil {
		name := ImageFileName(unit.Section, unit.Prompt, p.now().Unix())
		out.Result.ImagePath, err = writeImage(unit.OutputDir, name, data)
	}
	out.Duration = time.Since(start)

	task := metrics.TaskRecord{
		Type:      metrics.TaskTypeRender,
		Document:  p.document,
		Section:   string(unit.Section),
		Worker:    worker,
		Status:    metrics.StatusSuccess,
		StartTime: start,
		EndTime:   start.Add(out.Duration),
		Duration:  out.Duration,
	}

	if err != nil {
		out.Err = err
		task.Status = metrics.StatusError
		task.ErrorMsg = err.Error()
		p.logger.Error("Render failed",
			logging.Document(p.document),
			logging.Worker(worker),
			logging.Section(string(unit.Section)),
			logging.Prompt(unit.Prompt),
			zap.Error(err))
	} else {
		out.Result.Prompt = unit.Prompt
		p.logger.Info("Rendered image",
			append(logging.RenderFields(string(unit.Section), out.Result.ImagePath, out.Duration),
				logging.Document(p.document), logging.Worker(worker))...)
	}

	p.collector.RecordTask(task)
	return out
}
