// Package project implements the Result Projector & Diagnostics (§4.5): on
// success it reads the solved grid into filled shifts and a penalty
// breakdown; on failure it classifies per-(date, location) infeasibility
// candidates instead of guessing a single cause.
package project

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/constraints"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/objective"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/solver"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// FilledShift is one slot's outcome: the assigned testers in stable,
// person-input order (§5 ordering guarantees), not solver order.
type FilledShift struct {
	Location  string
	Date      model.Date
	Weekday   string
	ISOWeek   int
	TeamIndex int
	Testers   []string
}

// PenaltyRow is one non-zero penalty-breakdown instance (§4.5).
type PenaltyRow struct {
	Component objective.Component
	Person    string
	ScopeKey  string
	Units     int64
	Weighted  int64
}

// ComponentSummary is Σ weighted per component.
type ComponentSummary struct {
	Component objective.Component
	Total     int64
}

// DiagnosticRow is one (date, location) candidate-reason row emitted on
// failure (§4.5). Flags are independent; callers display all that are set.
type DiagnosticRow struct {
	Date       model.Date
	Location   string
	Required   int
	Assigned   int
	AvailableT int
	AvailableP int

	BlameAvailability bool
	BlameMaxPerDay    bool
	BlameMaxPerWeek   bool
	BlameSingleFirst  bool
	BlameExclusions   bool
}

// Success is returned when the solver status is OPTIMAL or FEASIBLE.
type Success struct {
	FilledShifts []FilledShift
	Penalties    []PenaltyRow
	Summary      []ComponentSummary
}

// Failure is returned when the solver status is INFEASIBLE or TIMEOUT.
type Failure struct {
	Diagnostics []DiagnosticRow
}

// Project reads result against grid and built, branching on status per
// §4.4 (OPTIMAL/FEASIBLE are success, everything else triggers
// diagnostics).
func Project(grid *modelbuilder.Grid, built *objective.Built, result *solver.Result) (*Success, *Failure) {
	if result.Status.Success() {
		return projectSuccess(grid, built, result.Response), nil
	}
	return nil, projectFailure(grid)
}

func projectSuccess(grid *modelbuilder.Grid, built *objective.Built, response *cmpb.CpSolverResponse) *Success {
	shifts := make([]FilledShift, 0, len(grid.Slots))
	for si, s := range grid.Slots {
		var testers []string
		for pi, p := range grid.Persons {
			if cpmodel.SolutionBooleanValue(response, grid.Var(pi, si)) {
				testers = append(testers, p.Name)
			}
		}
		shifts = append(shifts, FilledShift{
			Location:  s.Location,
			Date:      s.Date,
			Weekday:   s.Weekday,
			ISOWeek:   s.ISOWeek,
			TeamIndex: s.TeamIndex,
			Testers:   testers,
		})
	}

	var rows []PenaltyRow
	totals := make(map[objective.Component]int64)
	for _, e := range built.Entries {
		units := readUnits(response, e.Units)
		if units == 0 {
			continue
		}
		weighted := units * int64(e.Weight)
		if e.Quadratic {
			weighted = int64(e.Weight) * units * units
		}
		person := ""
		if e.PersonIdx >= 0 && e.PersonIdx < len(grid.Persons) {
			person = grid.Persons[e.PersonIdx].Name
		}
		rows = append(rows, PenaltyRow{
			Component: e.Component,
			Person:    person,
			ScopeKey:  e.ScopeKey,
			Units:     units,
			Weighted:  weighted,
		})
		totals[e.Component] += weighted
	}

	summary := make([]ComponentSummary, 0, len(totals))
	for _, c := range []objective.Component{
		objective.ComponentLocation, objective.ComponentFairness, objective.ComponentMonthlyCap,
		objective.ComponentMonthlyAvg, objective.ComponentWeeklyMulti, objective.ComponentMonthlyMinAvail,
		objective.ComponentLocationFairness,
	} {
		if total, ok := totals[c]; ok {
			summary = append(summary, ComponentSummary{Component: c, Total: total})
		}
	}

	return &Success{FilledShifts: shifts, Penalties: rows, Summary: summary}
}

// readUnits reads an Entry's raw count, dispatching on whether the
// underlying variable is an IntVar or a BoolVar (T6's miss indicator).
func readUnits(response *cmpb.CpSolverResponse, v cpmodel.LinearArgument) int64 {
	if b, ok := v.(cpmodel.BoolVar); ok {
		if cpmodel.SolutionBooleanValue(response, b) {
			return 1
		}
		return 0
	}
	if iv, ok := v.(cpmodel.IntVar); ok {
		return cpmodel.SolutionIntegerValue(response, iv)
	}
	return 0
}

// projectFailure builds one diagnostic row per (date, location) with
// required demand, classifying candidate causes with the same
// availability-first, coverage-ratio, weekly-cap heuristics the reference
// implementation used — never guessing a single definitive cause.
func projectFailure(grid *modelbuilder.Grid) *Failure {
	type key struct {
		date model.Date
		loc  string
	}
	required := map[key]int{}
	headcount := map[key]int{}
	order := []key{}
	for _, s := range grid.Slots {
		k := key{date: s.Date, loc: s.Location}
		if _, ok := required[k]; !ok {
			order = append(order, k)
		}
		required[k]++
		headcount[k] += s.RequiredHeadcount()
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date.Before(order[j].date)
		}
		return order[i].loc < order[j].loc
	})

	weekCounts := weeklyAssignmentCounts(grid)

	rows := make([]DiagnosticRow, 0, len(order))
	for _, k := range order {
		availT, availP := 0, 0
		for _, p := range grid.Persons {
			if !p.IsAvailable(k.date) || p.LocationFlagFor(k.loc) == model.LocationForbidden {
				continue
			}
			if p.Role == model.RoleSenior {
				availT++
			} else {
				availP++
			}
		}
		avail := availT + availP
		req := required[k]

		row := DiagnosticRow{
			Date:       k.date,
			Location:   k.loc,
			Required:   req,
			Assigned:   0,
			AvailableT: availT,
			AvailableP: availP,
		}

		// §4.5 rule 2, "available_T + available_P < k(slot) summed
		// appropriately": compare against the date/location's total
		// required headcount, and separately require enough distinct
		// seniors to cover every slot (H3 forbids reusing one senior
		// across same-day slots, so availT must reach req on its own).
		switch {
		case avail == 0:
			row.BlameAvailability = true
		case avail < headcount[k]:
			row.BlameAvailability = true
		case availT < req:
			row.BlameAvailability = true
		default:
			week := -1
			for _, s := range grid.Slots {
				if s.Date == k.date && s.Location == k.loc {
					week = s.ISOWeek
					break
				}
			}
			capped := 0
			if week >= 0 {
				for pi := range grid.Persons {
					if weekCounts[pi][week] >= constraints.DefaultWMax {
						capped++
					}
				}
			}
			if capped > 0 {
				row.BlameMaxPerWeek = true
			}
			row.BlameMaxPerDay = true
			row.BlameSingleFirst = true
			row.BlameExclusions = true
		}
		rows = append(rows, row)
	}
	return &Failure{Diagnostics: rows}
}

func weeklyAssignmentCounts(grid *modelbuilder.Grid) map[int]map[int]int {
	counts := make(map[int]map[int]int, grid.NumPersons())
	for pi := range grid.Persons {
		perWeek := make(map[int]int)
		for _, si := range allSlotIndices(grid) {
			s := grid.Slots[si]
			perWeek[s.ISOWeek]++
		}
		counts[pi] = perWeek
	}
	return counts
}

func allSlotIndices(grid *modelbuilder.Grid) []int {
	idx := make([]int, len(grid.Slots))
	for i := range idx {
		idx[i] = i
	}
	return idx
}
