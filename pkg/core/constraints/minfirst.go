package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// minFirstConstraint is H5: every slot needs at least one senior (role T).
// If no senior is available on a date while a shift exists there, this
// makes the model infeasible — that is detected by the solver, not
// silently relaxed here.
type minFirstConstraint struct{}

func (minFirstConstraint) Name() Name { return MinFirst }

func (minFirstConstraint) Apply(grid *modelbuilder.Grid, _ Options) {
	for si := range grid.Slots {
		expr := cpmodel.NewLinearExpr()
		for pi, p := range grid.Persons {
			if p.Role == model.RoleSenior {
				expr.Add(grid.Var(pi, si))
			}
		}
		grid.Builder.AddLessOrEqual(cpmodel.NewConstant(1), expr)
	}
}
