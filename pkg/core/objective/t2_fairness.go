package objective

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// fairnessTerm is T2: spread the total shift count evenly across persons by
// penalizing the gap between the busiest and least-busy person.
type fairnessTerm struct{}

func (fairnessTerm) Component() Component { return ComponentFairness }

func (fairnessTerm) Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry) {
	n := grid.NumSlots()
	counts := make([]cpmodel.IntVar, grid.NumPersons())
	for pi := range grid.Persons {
		sum := cpmodel.NewConstant(0)
		for si := range grid.Slots {
			sum.Add(grid.Var(pi, si))
		}
		count := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(n)))
		grid.Builder.AddEquality(count, sum)
		counts[pi] = count
	}
	if len(counts) == 0 {
		return nil, nil
	}

	countArgs := make([]cpmodel.LinearArgument, len(counts))
	for i, c := range counts {
		countArgs[i] = c
	}

	maxShifts := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(n)))
	minShifts := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(n)))
	grid.Builder.AddMaxEquality(maxShifts, countArgs)
	grid.Builder.AddMinEquality(minShifts, countArgs)

	span := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(n)))
	spanSum := cpmodel.NewConstant(0)
	spanSum.AddTerm(maxShifts, 1)
	spanSum.AddTerm(minShifts, -1)
	grid.Builder.AddEquality(span, spanSum)

	contribs := []WeightedVar{
		{Var: span, Coeff: int64(w.Fairness)},
	}
	entries := []Entry{
		{Component: ComponentFairness, PersonIdx: -1, ScopeKey: "span", Units: span, Weight: w.Fairness},
	}
	return contribs, entries
}
