package objective

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// monthlyMinAvailTerm is T6: for every person and month where the person
// claimed availability on at least one date and the horizon has at least
// one slot that month, penalize ending up with zero assignments that
// month. miss = 1 iff the sum of that month's assignments is zero, modeled
// with two enforced implications rather than a direct boolean-equals test.
type monthlyMinAvailTerm struct{}

func (monthlyMinAvailTerm) Component() Component { return ComponentMonthlyMinAvail }

func (monthlyMinAvailTerm) Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry) {
	months := grid.Months()
	var contribs []WeightedVar
	var entries []Entry

	for pi, p := range grid.Persons {
		availableMonths := make(map[int]bool)
		for d, ok := range p.Availability {
			if ok {
				availableMonths[d.Month()] = true
			}
		}
		for _, m := range months {
			if !availableMonths[m] {
				continue
			}
			slots := grid.SlotsInMonth(m)
			if len(slots) == 0 {
				continue
			}
			sum := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(len(slots))))
			acc := cpmodel.NewConstant(0)
			for _, si := range slots {
				acc.Add(grid.Var(pi, si))
			}
			grid.Builder.AddEquality(sum, acc)

			miss := grid.Builder.NewBoolVar()
			grid.Builder.AddEquality(sum, cpmodel.NewConstant(0)).OnlyEnforceIf(miss)
			grid.Builder.AddLessOrEqual(cpmodel.NewConstant(1), sum).OnlyEnforceIf(miss.Not())

			contribs = append(contribs, WeightedVar{Var: miss, Coeff: int64(w.MonthlyMinAvail)})
			entries = append(entries, Entry{
				Component: ComponentMonthlyMinAvail,
				PersonIdx: pi,
				ScopeKey:  fmt.Sprintf("month_%d", m),
				Units:     miss,
				Weight:    w.MonthlyMinAvail,
			})
		}
	}
	return contribs, entries
}
