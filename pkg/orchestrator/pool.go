package orchestrator

import (
	"context"
	"sync"

	"github.com/rosterc/rosterc/pkg/roster"
)

// Pool bounds how many distinct jobs may solve concurrently — external to the CP engine's
// own per-solve worker parallelism (§5: "Distinct jobs are independent and may solve in
// parallel limited by a bounded worker pool external to the core"). Adapted from the
// teacher's optimizer.ParallelEvaluator worker-goroutine/channel pattern, repurposed from
// evaluating candidate solutions to running whole Orchestrator.Submit calls.
type Pool struct {
	workers int
	orch    *Orchestrator
}

// NewPool creates a pool of the given worker count bound to orch.
func NewPool(workers int, orch *Orchestrator) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{workers: workers, orch: orch}
}

// SubmitRequest is one job submission queued to the pool.
type SubmitRequest struct {
	Spec           *roster.Spec
	MaxTimeSeconds int
	Workers        int
}

// SubmitResult pairs a request's position with its Submit outcome.
type SubmitResult struct {
	Index  int
	JobID  string
	Errors []string
	Err    error
}

// SubmitBatch runs each request through Orchestrator.Submit, at most p.workers at a time,
// and returns results in request order.
func (p *Pool) SubmitBatch(ctx context.Context, requests []SubmitRequest) []SubmitResult {
	if len(requests) == 0 {
		return nil
	}

	type job struct {
		index int
		req   SubmitRequest
	}

	jobChan := make(chan job, len(requests))
	resultChan := make(chan SubmitResult, len(requests))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				select {
				case <-ctx.Done():
					resultChan <- SubmitResult{Index: j.index, Err: ctx.Err()}
				default:
					id, errs, err := p.orch.Submit(ctx, j.req.Spec, j.req.MaxTimeSeconds, j.req.Workers)
					resultChan <- SubmitResult{Index: j.index, JobID: id, Errors: errs, Err: err}
				}
			}
		}()
	}

	go func() {
		for i, req := range requests {
			jobChan <- job{index: i, req: req}
		}
		close(jobChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]SubmitResult, len(requests))
	for r := range resultChan {
		results[r.Index] = r
	}
	return results
}
