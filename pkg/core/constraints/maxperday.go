package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// maxPerDayConstraint is H3: at most one shift per person per day.
type maxPerDayConstraint struct{}

func (maxPerDayConstraint) Name() Name { return MaxPerDay }

func (maxPerDayConstraint) Apply(grid *modelbuilder.Grid, _ Options) {
	for pi := range grid.Persons {
		for _, d := range grid.Dates() {
			expr := cpmodel.NewLinearExpr()
			for _, si := range grid.SlotsOnDate(d) {
				expr.Add(grid.Var(pi, si))
			}
			grid.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(1))
		}
	}
}
