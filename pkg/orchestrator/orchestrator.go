// Package orchestrator is C9, the thin job orchestrator: validates a spec, drives
// C3-C8 when it's clean, and mediates with the external job store. It contains no
// scheduling logic of its own.
package orchestrator

import (
	"context"

	apperrors "github.com/rosterc/rosterc/pkg/errors"
	"github.com/rosterc/rosterc/pkg/jobstore"
	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/logger"
	"github.com/rosterc/rosterc/pkg/lower"
	"github.com/rosterc/rosterc/pkg/project"
	"github.com/rosterc/rosterc/pkg/roster"
	"github.com/rosterc/rosterc/pkg/solve"
)

// Orchestrator receives {spec, max_time_seconds, workers}, runs C1-C2 synchronously, and
// on success runs C3-C8, recording status transitions into Store (§4.9).
type Orchestrator struct {
	Store    jobstore.Store
	Driver   *solve.Driver
	MaxCells int
}

// New builds an Orchestrator around the real CP-SAT driver.
func New(store jobstore.Store, maxCells int) *Orchestrator {
	return &Orchestrator{Store: store, Driver: solve.NewDriver(), MaxCells: maxCells}
}

// ValidateOnly runs only C1-C2 and never allocates a job (§6).
func (o *Orchestrator) ValidateOnly(spec *roster.Spec) (bool, []string) {
	if ve := roster.Validate(spec); ve.HasErrors() {
		return false, ve.Messages()
	}
	if _, ve := roster.Normalize(spec); ve != nil && ve.HasErrors() {
		return false, ve.Messages()
	}
	return true, nil
}

// Submit runs C1-C2 synchronously; on failure it returns validation errors without
// touching the store. On success it allocates a job id, records "queued", then runs
// C3-C8 and records "done"/"failed" (§4.9). Returns the job id even on eventual solve
// failure, since the job record itself was created.
func (o *Orchestrator) Submit(ctx context.Context, spec *roster.Spec, maxTimeSeconds, workers int) (string, []string, error) {
	if ve := roster.Validate(spec); ve.HasErrors() {
		return "", ve.Messages(), nil
	}
	norm, ve := roster.Normalize(spec)
	if ve != nil && ve.HasErrors() {
		return "", ve.Messages(), nil
	}

	id, err := o.Store.Create(ctx)
	if err != nil {
		return "", nil, err
	}

	log := logger.NewCompilerLogger(id)
	o.run(ctx, id, norm, maxTimeSeconds, workers, log)

	return id, nil, nil
}

// run executes C3-C8 against an already-queued job and writes the outcome to the store.
// Nothing here is recovered locally (§7 propagation policy): every error terminates the
// pipeline at its stage and is written to the job record.
func (o *Orchestrator) run(ctx context.Context, jobID string, norm *roster.NormalizedSpec, maxTimeSeconds, workers int, log *logger.CompilerLogger) {
	if err := o.Store.SetStatus(ctx, jobID, jobstore.StatusRunning, nil); err != nil {
		return
	}

	l, err := lattice.Build(norm, o.MaxCells)
	if err != nil {
		_ = o.Store.SetFailed(ctx, jobID, err.Error())
		return
	}
	log.LatticeBuilt(len(l.Employees), len(l.Days), len(l.Shifts))

	if err := lower.LowerDemandCoverage(l, norm); err != nil {
		_ = o.Store.SetFailed(ctx, jobID, apperrors.EngineError(err).Error())
		return
	}

	penalties := make([]lower.Penalty, 0, len(norm.Rules))
	for _, rule := range norm.Rules {
		switch rule.Category {
		case "hard":
			if err := lower.LowerHard(l, rule.Scope, rule.Hard); err != nil {
				_ = o.Store.SetFailed(ctx, jobID, apperrors.EngineError(err).Error())
				return
			}
		case "soft":
			p, err := lower.LowerSoft(l, rule.Scope, rule.Label(), rule.Penalty, rule.Soft)
			if err != nil {
				_ = o.Store.SetFailed(ctx, jobID, apperrors.EngineError(err).Error())
				return
			}
			penalties = append(penalties, p)
		}
	}
	log.NormalizeComplete(countHard(norm.Rules), countSoft(norm.Rules))

	lower.AssembleObjective(l, penalties, norm.GlobalWeight)

	outcome, err := o.Driver.Solve(ctx, l, penalties, maxTimeSeconds, workers, log)
	if err != nil {
		_ = o.Store.SetFailed(ctx, jobID, err.Error())
		return
	}

	switch outcome.Status {
	case solve.StatusOptimal, solve.StatusFeasible:
		schedule, flat := project.Project(norm, outcome)
		log.ProjectionComplete(len(flat))
		penaltyOut := make(map[string]int64, len(outcome.Penalties))
		for k, v := range outcome.Penalties {
			penaltyOut[k] = v
		}
		_ = o.Store.SetResult(ctx, jobID, &jobstore.Result{
			Status:         outcome.Status,
			ObjectiveValue: outcome.ObjectiveValue,
			Schedule:       schedule,
			Flat:           flat,
			Penalties:      penaltyOut,
		})
	case solve.StatusInfeasible:
		_ = o.Store.SetFailed(ctx, jobID, apperrors.Infeasible("约束集合不可满足").Error())
	case solve.StatusTimeout:
		bound := outcome.BestBound
		_ = o.Store.SetStatus(ctx, jobID, jobstore.StatusFailed, &bound)
		_ = o.Store.SetFailed(ctx, jobID, apperrors.Timeout("求解超时").Error())
	default:
		_ = o.Store.SetFailed(ctx, jobID, outcome.Message)
	}
}

func countHard(rules []roster.NormalizedRule) int {
	n := 0
	for _, r := range rules {
		if r.Category == "hard" {
			n++
		}
	}
	return n
}

func countSoft(rules []roster.NormalizedRule) int {
	n := 0
	for _, r := range rules {
		if r.Category == "soft" {
			n++
		}
	}
	return n
}
