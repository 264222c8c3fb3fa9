package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// exactTestersConstraint is H4: every slot must be filled by exactly k(s)
// persons, where k(s) is 1 for peer-disallowing locations, else 2.
type exactTestersConstraint struct{}

func (exactTestersConstraint) Name() Name { return ExactTesters }

func (exactTestersConstraint) Apply(grid *modelbuilder.Grid, _ Options) {
	for si, s := range grid.Slots {
		expr := cpmodel.NewLinearExpr()
		for pi := range grid.Persons {
			expr.Add(grid.Var(pi, si))
		}
		grid.Builder.AddEquality(expr, cpmodel.NewConstant(int64(s.RequiredHeadcount())))
	}
}
