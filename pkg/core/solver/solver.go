// Package solver implements the Solver Driver (§4.4): it hands the
// completed model to CP-SAT and maps its status onto the four outcomes the
// rest of the core understands.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"go.uber.org/zap"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// Status is the core's outward-facing solve outcome (§6 output 1). UNKNOWN
// from the underlying solver collapses into Timeout: per §5, an UNKNOWN
// caused by hitting the time limit is handled identically to Infeasible.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Success reports whether the caller should read assignments (OPTIMAL,
// FEASIBLE) rather than switch to diagnostic mode.
func (s Status) Success() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Params configures the underlying solver. Both fields are optional; zero
// values leave CP-SAT's own defaults in effect.
type Params struct {
	// TimeLimit is passed through to the solver as max_time_in_seconds
	// (§5: "an implementation should accept an optional deadline/time-limit
	// parameter").
	TimeLimit time.Duration
	// NumWorkers sets the solver's internal worker-thread count. The core
	// itself exposes no concurrency beyond this (§5).
	NumWorkers int
}

// Result bundles the mapped status with the raw CP-SAT response the
// Projector needs to read variable values from.
type Result struct {
	Status   Status
	Response *cmpb.CpSolverResponse
}

// Driver runs one CP-SAT solve per call; it holds no state across calls.
type Driver struct {
	logger *zap.Logger
	params Params
}

func New(logger *zap.Logger, params Params) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{logger: logger, params: params}
}

// Solve submits grid's model to CP-SAT. ctx is observed only for logging a
// deadline mismatch; the solve call itself is the single blocking point in
// the core (§5) and cannot be interrupted mid-flight once started.
func (d *Driver) Solve(ctx context.Context, grid *modelbuilder.Grid) (*Result, error) {
	m, err := grid.Builder.Model()
	if err != nil {
		return nil, fmt.Errorf("instantiate cp model: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		d.logger.Debug("solve called with context deadline", zap.Time("deadline", deadline))
	}

	var response *cmpb.CpSolverResponse
	if d.params.TimeLimit > 0 || d.params.NumWorkers > 0 {
		satParams := &sppb.SatParameters{}
		if d.params.TimeLimit > 0 {
			limit := d.params.TimeLimit.Seconds()
			satParams.MaxTimeInSeconds = &limit
		}
		if d.params.NumWorkers > 0 {
			workers := int32(d.params.NumWorkers)
			satParams.NumSearchWorkers = &workers
		}
		response, err = cpmodel.SolveCpModelWithSatParameters(satParams, m)
	} else {
		response, err = cpmodel.SolveCpModel(m)
	}
	if err != nil {
		return nil, fmt.Errorf("solve cp model: %w", err)
	}

	status := mapStatus(response.GetStatus())
	d.logger.Info("solve complete",
		zap.String("status", status.String()),
		zap.Float64("objective", response.GetObjectiveValue()),
		zap.Int("num_persons", grid.NumPersons()),
		zap.Int("num_slots", grid.NumSlots()),
	)
	return &Result{Status: status, Response: response}, nil
}

func mapStatus(s cmpb.CpSolverStatus) Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	default:
		return StatusTimeout
	}
}
