package objective

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// locationFairnessTerm is T7 (optional): spreads flag-Penalized ("bad
// location") assignments across persons rather than letting them pile onto
// a few, by penalizing the gap between the most- and least-burdened
// person's penalized-assignment count.
type locationFairnessTerm struct{}

func (locationFairnessTerm) Component() Component { return ComponentLocationFairness }

func (locationFairnessTerm) Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry) {
	if len(grid.Persons) == 0 {
		return nil, nil
	}

	counts := make([]cpmodel.IntVar, len(grid.Persons))
	for pi, p := range grid.Persons {
		sum := cpmodel.NewConstant(0)
		for si, s := range grid.Slots {
			if p.LocationFlagFor(s.Location) == model.LocationPenalized {
				sum.Add(grid.Var(pi, si))
			}
		}
		count := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(len(grid.Slots))))
		grid.Builder.AddEquality(count, sum)
		counts[pi] = count
	}

	countArgs := make([]cpmodel.LinearArgument, len(counts))
	for i, c := range counts {
		countArgs[i] = c
	}

	maxPen := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(len(grid.Slots))))
	minPen := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(len(grid.Slots))))
	grid.Builder.AddMaxEquality(maxPen, countArgs)
	grid.Builder.AddMinEquality(minPen, countArgs)

	span := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(len(grid.Slots))))
	spanSum := cpmodel.NewConstant(0)
	spanSum.AddTerm(maxPen, 1)
	spanSum.AddTerm(minPen, -1)
	grid.Builder.AddEquality(span, spanSum)

	contribs := []WeightedVar{
		{Var: span, Coeff: int64(w.LocationFairness)},
	}
	entries := []Entry{
		{Component: ComponentLocationFairness, PersonIdx: -1, ScopeKey: "span", Units: span, Weight: w.LocationFairness},
	}
	return contribs, entries
}
