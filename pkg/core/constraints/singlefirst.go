package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// singleFirstConstraint is H6: at most one senior per slot, but only when a
// peer is available that date. The "peer available" check is a static probe
// over the input availability data, computed once per slot before any
// decision variable is touched — it must never depend on the solution.
type singleFirstConstraint struct{}

func (singleFirstConstraint) Name() Name { return SingleFirst }

func (singleFirstConstraint) Apply(grid *modelbuilder.Grid, _ Options) {
	for si, s := range grid.Slots {
		if !peerAvailable(grid.Persons, s.Date) {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for pi, p := range grid.Persons {
			if p.Role == model.RoleSenior {
				expr.Add(grid.Var(pi, si))
			}
		}
		grid.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(1))
	}
}

func peerAvailable(persons []model.Person, d model.Date) bool {
	for _, p := range persons {
		if p.Role == model.RolePeer && p.IsAvailable(d) {
			return true
		}
	}
	return false
}
