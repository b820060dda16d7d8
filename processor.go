package ethqr

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Processor assembles many configurations concurrently. Each configuration
// is built independently; the processor shares only its validator, which is
// read-only during builds.
type Processor struct {
	validator    *Validator
	concurrency  int
	logger       *zap.Logger
	errorHandler func(index int, err error)
}

// ProcessorOption defines a function signature for configuring a Processor.
type ProcessorOption func(*Processor)

// WithConcurrency sets the maximum number of concurrent builds.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithErrorHandler sets a callback invoked for every rejected configuration.
// It is called from worker goroutines and must be safe for concurrent use.
func WithErrorHandler(handler func(index int, err error)) ProcessorOption {
	return func(p *Processor) {
		p.errorHandler = handler
	}
}

// WithProcessorLogger sets the logger for rejected configurations.
func WithProcessorLogger(logger *zap.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProcessorValidator replaces the default validator.
func WithProcessorValidator(v *Validator) ProcessorOption {
	return func(p *Processor) {
		if v != nil {
			p.validator = v
		}
	}
}

// NewProcessor creates a Processor with the given options.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		validator:   defaultValidator,
		concurrency: 4,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one configuration in a batch.
type Result struct {
	Payload string
	Err     error
}

// Process assembles a single configuration.
func (p *Processor) Process(cfg Config) (string, error) {
	return assemble(&cfg, p.validator)
}

// ProcessBatch assembles cfgs concurrently, limited to the configured
// concurrency. Results are positionally aligned with cfgs. The returned
// error is the first failure by position, or ctx.Err() if the context was
// cancelled before every build started; results are returned either way.
func (p *Processor) ProcessBatch(ctx context.Context, cfgs []Config) ([]Result, error) {
	results := make([]Result, len(cfgs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)

	for i := range cfgs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return results, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			payload, err := assemble(&cfgs[idx], p.validator)
			if err != nil {
				results[idx].Err = err
				p.logger.Debug("batch item rejected", zap.Int("index", idx), zap.Error(err))
				if p.errorHandler != nil {
					p.errorHandler(idx, err)
				}
				return
			}
			results[idx].Payload = payload
		}(i)
	}

	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}
	return results, nil
}
