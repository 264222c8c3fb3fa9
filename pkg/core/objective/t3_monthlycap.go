package objective

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// monthlyCapTerm is T3: penalize, per person and per calendar month present
// in the horizon, the amount by which their assigned shifts exceed
// p.month_max.
type monthlyCapTerm struct{}

func (monthlyCapTerm) Component() Component { return ComponentMonthlyCap }

func (monthlyCapTerm) Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry) {
	months := grid.Months()
	var contribs []WeightedVar
	var entries []Entry

	for pi, p := range grid.Persons {
		for _, m := range months {
			slots := grid.SlotsInMonth(m)
			count := len(slots)
			cap := p.MonthMax
			diffLB := int64(-cap)
			diffUB := int64(count - cap)
			if diffUB < diffLB {
				diffUB = diffLB
			}
			diff := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(diffLB, diffUB))
			sum := cpmodel.NewConstant(int64(-cap))
			for _, si := range slots {
				sum.Add(grid.Var(pi, si))
			}
			grid.Builder.AddEquality(diff, sum)

			excessUB := diffUB
			if excessUB < 0 {
				excessUB = 0
			}
			excess := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, excessUB))
			grid.Builder.AddMaxEquality(excess, []cpmodel.LinearArgument{diff, cpmodel.NewConstant(0)})

			contribs = append(contribs, WeightedVar{Var: excess, Coeff: int64(w.Monthly)})
			entries = append(entries, Entry{
				Component: ComponentMonthlyCap,
				PersonIdx: pi,
				ScopeKey:  fmt.Sprintf("month_%d", m),
				Units:     excess,
				Weight:    w.Monthly,
			})
		}
	}
	return contribs, entries
}
