// Package solve drives the CP-SAT engine against a built lattice.Lattice and collapses
// its termination status into the five outcomes the rest of the pipeline understands (C7).
package solve

import (
	"context"
	"time"

	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/logger"
	"github.com/rosterc/rosterc/pkg/lower"
	apperrors "github.com/rosterc/rosterc/pkg/errors"
)

// Status is one of the five collapsed termination outcomes (§4.7).
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusTimeout    Status = "TIMEOUT"
	StatusError      Status = "ERROR"
)

// Outcome is the decoded result of one solve attempt, ready for C8 projection.
type Outcome struct {
	Status         Status
	ObjectiveValue int64
	BestBound      int64
	Message        string
	// Assignment[e][d][s] is true iff employee e is assigned shift s on day d. Populated
	// only on OPTIMAL/FEASIBLE.
	Assignment map[string]map[string]map[string]bool
	// Penalties maps each soft rule's label to its realized (unweighted) value.
	Penalties map[string]int64
}

// Response is the engine-native result of one raw solve call, already decoded into
// Go-native values keyed by the lattice's own ids — this is the seam that lets tests
// substitute FakeEngine without touching the real CP-SAT bindings.
type Response struct {
	RawStatus          string
	ObjectiveValue      float64
	BestObjectiveBound  float64
	BooleanValues       map[string]bool  // keyed by "e,d,s" id triples
	IntegerValues       map[string]int64 // keyed by penalty label
}

// Engine abstracts over the raw CP-SAT call so the driver can be tested without a working
// or-tools build (mirrors the teacher's pkg/scheduler/solver.Solver interface).
type Engine interface {
	Solve(ctx context.Context, l *lattice.Lattice, penalties []lower.Penalty, maxTimeSeconds, workers int) (Response, error)
}

// Driver runs one solve: Engine.Solve, then collapses the raw status and extracts the
// assignment and penalty values (§4.7).
type Driver struct {
	Engine Engine
}

// NewDriver builds a driver around the real CP-SAT engine.
func NewDriver() *Driver {
	return &Driver{Engine: CpSatEngine{}}
}

// Solve runs the solve, logging stage boundaries via the given CompilerLogger. penalties
// are the Penalty contributions assembled by C5, used here only to name the Integer
// extraction keys the engine should report back (the engine computes their values itself
// from the same model it solved).
func (d *Driver) Solve(ctx context.Context, l *lattice.Lattice, penalties []lower.Penalty, maxTimeSeconds, workers int, log *logger.CompilerLogger) (*Outcome, error) {
	if ctx.Err() != nil {
		return nil, apperrors.EngineError(ctx.Err())
	}

	log.SolveStart(maxTimeSeconds, workers)
	start := time.Now()

	resp, err := d.Engine.Solve(ctx, l, penalties, maxTimeSeconds, workers)
	if err != nil {
		return nil, apperrors.EngineError(err)
	}

	outcome := collapse(resp, l)
	log.SolveComplete(string(outcome.Status), time.Since(start), float64(outcome.ObjectiveValue))
	return outcome, nil
}

func collapse(resp Response, l *lattice.Lattice) *Outcome {
	status := collapseStatus(resp.RawStatus)
	outcome := &Outcome{
		Status:         status,
		ObjectiveValue: int64(resp.ObjectiveValue),
		BestBound:      int64(resp.BestObjectiveBound),
	}

	if status != StatusOptimal && status != StatusFeasible {
		return outcome
	}

	assignment := make(map[string]map[string]map[string]bool, len(l.Employees))
	for _, e := range l.Employees {
		assignment[e] = make(map[string]map[string]bool, len(l.Days))
		for _, d := range l.Days {
			assignment[e][d] = make(map[string]bool, len(l.Shifts))
			for _, s := range l.Shifts {
				key := e + "," + d + "," + s
				assignment[e][d][s] = resp.BooleanValues[key]
			}
		}
	}
	outcome.Assignment = assignment
	outcome.Penalties = resp.IntegerValues
	return outcome
}

// collapseStatus maps the engine's native CpSolverStatus name to the five collapsed
// outcomes. MODEL_INVALID is treated as INFEASIBLE (§4.7 groups them together).
func collapseStatus(raw string) Status {
	switch raw {
	case "OPTIMAL":
		return StatusOptimal
	case "FEASIBLE":
		return StatusFeasible
	case "INFEASIBLE", "MODEL_INVALID":
		return StatusInfeasible
	case "UNKNOWN":
		return StatusTimeout
	default:
		return StatusError
	}
}
