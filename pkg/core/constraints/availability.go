package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// availabilityConstraint is H1: a person cannot be assigned to a slot on a
// date they are unavailable.
type availabilityConstraint struct{}

func (availabilityConstraint) Name() Name { return Availability }

func (availabilityConstraint) Apply(grid *modelbuilder.Grid, _ Options) {
	for pi, p := range grid.Persons {
		for si, s := range grid.Slots {
			if !p.IsAvailable(s.Date) {
				grid.Builder.AddLessOrEqual(grid.Var(pi, si), cpmodel.NewConstant(0))
			}
		}
	}
}
