package solve

import (
	"context"
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/lower"
)

// CpSatEngine is the real Engine backed by google/or-tools' CP-SAT builder, the
// confirmed-real dependency the spec's "CP-SAT-style solver" calls for.
type CpSatEngine struct{}

// Solve builds the model's proto, runs the solver with the given time/worker limits, and
// decodes the response into Go-native values keyed by the lattice's own ids.
func (CpSatEngine) Solve(ctx context.Context, l *lattice.Lattice, penalties []lower.Penalty, maxTimeSeconds, workers int) (Response, error) {
	m, err := l.Builder.Model()
	if err != nil {
		return Response{}, fmt.Errorf("构建 CP 模型失败: %w", err)
	}

	params := cpmodel.NewSatParameters()
	params.MaxTimeInSeconds = float64(maxTimeSeconds)
	params.NumWorkers = int32(workers)

	response, err := cpmodel.SolveCpModelWithParameters(m, params)
	if err != nil {
		return Response{}, fmt.Errorf("求解失败: %w", err)
	}

	booleans := make(map[string]bool, len(l.Employees)*len(l.Days)*len(l.Shifts))
	for _, e := range l.Employees {
		for _, d := range l.Days {
			for _, s := range l.Shifts {
				v, ok := l.X(e, d, s)
				if !ok {
					continue
				}
				booleans[e+","+d+","+s] = cpmodel.SolutionBooleanValue(response, v)
			}
		}
	}

	integers := make(map[string]int64, len(penalties))
	for _, p := range penalties {
		integers[p.Label] = cpmodel.SolutionIntegerValue(response, p.Var)
	}

	return Response{
		RawStatus:          response.GetStatus().String(),
		ObjectiveValue:     response.GetObjectiveValue(),
		BestObjectiveBound: response.GetBestObjectiveBound(),
		BooleanValues:      booleans,
		IntegerValues:      integers,
	}, nil
}
