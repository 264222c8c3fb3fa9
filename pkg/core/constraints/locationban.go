package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// locationBanConstraint is H2: a person flagged LocationForbidden for a
// slot's location cannot be assigned to that slot.
type locationBanConstraint struct{}

func (locationBanConstraint) Name() Name { return LocationBan }

func (locationBanConstraint) Apply(grid *modelbuilder.Grid, _ Options) {
	for pi, p := range grid.Persons {
		for si, s := range grid.Slots {
			if p.LocationFlagFor(s.Location) == model.LocationForbidden {
				grid.Builder.AddLessOrEqual(grid.Var(pi, si), cpmodel.NewConstant(0))
			}
		}
	}
}
