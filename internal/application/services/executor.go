package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/keygate-dev/keygate/internal/application/dto"
)

// Executor runs a batch of requests through the pipeline. Individual
// failures never abort the batch; every request produces an Outcome.
type Executor struct {
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewExecutor creates a batch executor around a pipeline.
func NewExecutor(pipeline *Pipeline, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		pipeline: pipeline,
		logger:   logger,
	}
}

// ExecuteAll runs every request, up to opts.Concurrency at a time
// (sequential when 0 or 1). Outcomes are returned in request order.
func (e *Executor) ExecuteAll(ctx context.Context, requests []dto.Request, opts dto.ExecutionOptions) []dto.Outcome {
	outcomes := make([]dto.Outcome, len(requests))

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range requests {
		g.Go(func() error {
			outcomes[i] = e.executeOne(gctx, req)
			return nil
		})
	}

	// Workers never return errors; failures are captured per outcome.
	_ = g.Wait()

	return outcomes
}

func (e *Executor) executeOne(ctx context.Context, req dto.Request) dto.Outcome {
	outcome := dto.Outcome{
		ID:   uuid.NewString(),
		Name: req.Name,
	}

	result, err := e.pipeline.Execute(ctx, req)
	if err != nil {
		e.logger.Warn("request failed", "name", req.Name, "error", err)
		outcome.Err = err
		outcome.Error = err.Error()
		return outcome
	}

	outcome.ID = result.ID
	outcome.Result = result
	return outcome
}
