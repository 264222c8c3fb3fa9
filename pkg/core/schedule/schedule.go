// Package schedule is the core's single entry point (§6): it owns the
// explicit, non-global context threaded through Model Builder → Hard
// Constraint Set → Soft Objective Builder → Solver Driver → Result
// Projector, in that order, and nowhere else.
package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/constraints"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/objective"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/project"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/solver"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// BuildError reports an internal invariant violated while constructing the
// model (§7 model-build error) — a bug, not a malformed input.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("model build: %s", e.Reason)
}

// Input bundles the eight external inputs §6 lists.
type Input struct {
	Persons   []model.Person
	Locations []model.Location

	// HorizonDates narrows the dates actually considered; nil means every
	// date any location demands a team on.
	HorizonDates map[model.Date]bool

	// MutualExclusions is H8's configured pairs of person names; pairs
	// naming unknown persons are silently skipped downstream.
	MutualExclusions [][2]string

	// Weights recognizes the keys {location, fairness, monthly,
	// monthly_avg, weekly_multi, monthly_min_avail, location_fairness};
	// missing keys are 0.
	Weights map[string]int

	// EnabledConstraints is the subset of hard-constraint names to apply;
	// nil/empty means all.
	EnabledConstraints map[constraints.Name]bool

	// EnabledObjectives is the subset of objective component names to
	// weigh; nil/empty means all. A disabled objective's auxiliary
	// variables are still built (the objective package always wires
	// them) but contribute zero to the minimized sum, since CP-SAT has
	// no notion of an "absent" term once its variables exist.
	EnabledObjectives map[objective.Component]bool

	// TimeLimit is input 8, optional.
	TimeLimit time.Duration

	// NumWorkers configures the solver's internal worker threads (§5).
	NumWorkers int
}

// Result is the tagged-variant output (§4.5, Design Notes): exactly one of
// Success or Failure is non-nil, selected by Status.
type Result struct {
	Status  solver.Status
	Success *project.Success
	Failure *project.Failure
}

// Run is the core's one entry point (§6). Input-validation and
// model-build errors abort the call; Infeasible and Timeout are reported
// through Result, not through the error return (§7 propagation policy).
func Run(ctx context.Context, logger *zap.Logger, input Input) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validate(input); err != nil {
		return nil, err
	}

	horizon := input.HorizonDates
	if horizon == nil {
		horizon = fullHorizon(input.Locations)
	}
	slots := model.BuildShiftSlots(input.Locations, horizon)
	if err := checkDuplicateNames(input.Persons); err != nil {
		return nil, err
	}

	grid := modelbuilder.New(input.Persons, slots)
	logger.Debug("model built", zap.Int("persons", grid.NumPersons()), zap.Int("slots", grid.NumSlots()))

	constraints.ApplyAll(grid, constraints.Options{
		WMax:                 constraints.DefaultWMax,
		MutualExclusionPairs: input.MutualExclusions,
		Enabled:              input.EnabledConstraints,
	})

	weights := effectiveWeights(input.Weights, input.EnabledObjectives)
	built := objective.BuildAll(grid, weights)

	driver := solver.New(logger, solver.Params{TimeLimit: input.TimeLimit, NumWorkers: input.NumWorkers})
	solved, err := driver.Solve(ctx, grid)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	success, failure := project.Project(grid, built, solved)
	return &Result{Status: solved.Status, Success: success, Failure: failure}, nil
}

func validate(input Input) error {
	for _, p := range input.Persons {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, l := range input.Locations {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func checkDuplicateNames(persons []model.Person) error {
	seen := make(map[string]bool, len(persons))
	for _, p := range persons {
		if seen[p.Name] {
			return &BuildError{Reason: fmt.Sprintf("duplicate person name %q", p.Name)}
		}
		seen[p.Name] = true
	}
	return nil
}

func fullHorizon(locations []model.Location) map[model.Date]bool {
	horizon := make(map[model.Date]bool)
	for _, l := range locations {
		for d := range l.TeamsPerDate {
			horizon[d] = true
		}
	}
	return horizon
}

// effectiveWeights folds input 7's enabled_objectives subset into input 5's
// weight map: a disabled objective keeps its auxiliary variables (the
// objective package always wires them) but is zeroed out of the sum.
func effectiveWeights(raw map[string]int, enabled map[objective.Component]bool) objective.Weights {
	w := objective.Weights{
		Location:         raw["location"],
		Fairness:         raw["fairness"],
		Monthly:          raw["monthly"],
		MonthlyAvg:       raw["monthly_avg"],
		WeeklyMulti:      raw["weekly_multi"],
		MonthlyMinAvail:  raw["monthly_min_avail"],
		LocationFairness: raw["location_fairness"],
	}
	if len(enabled) == 0 {
		return w
	}
	if !enabled[objective.ComponentLocation] {
		w.Location = 0
	}
	if !enabled[objective.ComponentFairness] {
		w.Fairness = 0
	}
	if !enabled[objective.ComponentMonthlyCap] {
		w.Monthly = 0
	}
	if !enabled[objective.ComponentMonthlyAvg] {
		w.MonthlyAvg = 0
	}
	if !enabled[objective.ComponentWeeklyMulti] {
		w.WeeklyMulti = 0
	}
	if !enabled[objective.ComponentMonthlyMinAvail] {
		w.MonthlyMinAvail = 0
	}
	if !enabled[objective.ComponentLocationFairness] {
		w.LocationFairness = 0
	}
	return w
}
