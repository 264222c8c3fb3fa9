package objective

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// monthlyAvgTerm is T4: a quadratic penalty on the shortfall between a
// person's assigned shift count and N * p.month_avg (N = number of distinct
// months in the horizon). The quadratic shape is implemented via a
// precomputed cost table and a table-indexed ("element") constraint rather
// than squaring a decision variable directly.
type monthlyAvgTerm struct{}

func (monthlyAvgTerm) Component() Component { return ComponentMonthlyAvg }

func (monthlyAvgTerm) Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry) {
	n := int64(len(grid.Months()))
	total := int64(grid.NumSlots())

	var contribs []WeightedVar
	var entries []Entry

	for pi, p := range grid.Persons {
		target := n * int64(p.MonthAvg)
		diffLB := target - total
		diffUB := target
		if diffUB < diffLB {
			diffUB = diffLB
		}
		diff := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(diffLB, diffUB))
		sum := cpmodel.NewConstant(target)
		for si := range grid.Slots {
			sum.AddTerm(grid.Var(pi, si), -1)
		}
		grid.Builder.AddEquality(diff, sum)

		deficitUB := diffUB
		if deficitUB < 0 {
			deficitUB = 0
		}
		deficit := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, deficitUB))
		grid.Builder.AddMaxEquality(deficit, []cpmodel.LinearArgument{diff, cpmodel.NewConstant(0)})

		costs := make([]cpmodel.LinearArgument, deficitUB+1)
		var costUB int64
		for i := int64(0); i <= deficitUB; i++ {
			c := int64(w.MonthlyAvg) * i * i
			costs[i] = cpmodel.NewConstant(c)
			if c > costUB {
				costUB = c
			}
		}
		cost := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, costUB))
		grid.Builder.AddElement(deficit, costs, cost)

		// Already weight-scaled inside the cost table, so the aggregate
		// coefficient here is 1, not w.MonthlyAvg.
		contribs = append(contribs, WeightedVar{Var: cost, Coeff: 1})
		entries = append(entries, Entry{
			Component: ComponentMonthlyAvg,
			PersonIdx: pi,
			Units:     deficit,
			Weight:    w.MonthlyAvg,
			Quadratic: true,
		})
	}
	return contribs, entries
}
