package objective

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// weeklyMultiTerm is T5: soft-penalizes a person working more than one
// shift in the same ISO-week. Combined with H7's hard cap, the second
// shift in a week becomes an allowed-but-penalized choice, and anything
// beyond the cap is ruled out entirely by H7.
type weeklyMultiTerm struct{}

func (weeklyMultiTerm) Component() Component { return ComponentWeeklyMulti }

func (weeklyMultiTerm) Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry) {
	weeks := grid.ISOWeeks()
	var contribs []WeightedVar
	var entries []Entry

	for pi := range grid.Persons {
		for _, wk := range weeks {
			slots := grid.SlotsInWeek(wk)
			count := len(slots)
			diff := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(-1, int64(max0(count-1))))
			sum := cpmodel.NewConstant(-1)
			for _, si := range slots {
				sum.Add(grid.Var(pi, si))
			}
			grid.Builder.AddEquality(diff, sum)

			excess := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(max0(count-1))))
			grid.Builder.AddMaxEquality(excess, []cpmodel.LinearArgument{diff, cpmodel.NewConstant(0)})

			contribs = append(contribs, WeightedVar{Var: excess, Coeff: int64(w.WeeklyMulti)})
			entries = append(entries, Entry{
				Component: ComponentWeeklyMulti,
				PersonIdx: pi,
				ScopeKey:  fmt.Sprintf("week_%d", wk),
				Units:     excess,
				Weight:    w.WeeklyMulti,
			})
		}
	}
	return contribs, entries
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
