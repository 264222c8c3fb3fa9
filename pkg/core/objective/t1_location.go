package objective

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// locationTerm is T1: penalize (p, s) assignments where s.location carries
// flag Penalized for p, falling back to the legacy single-location string
// when a person has no flags at all.
type locationTerm struct{}

func (locationTerm) Component() Component { return ComponentLocation }

func (locationTerm) Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry) {
	var contribs []WeightedVar
	var entries []Entry
	for pi, p := range grid.Persons {
		sum := cpmodel.NewConstant(0)
		any := false
		for si, s := range grid.Slots {
			if p.LocationFlagFor(s.Location) != model.LocationPenalized {
				continue
			}
			sum.Add(grid.Var(pi, si))
			any = true
		}
		if !any {
			continue
		}
		count := grid.Builder.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(len(grid.Slots))))
		grid.Builder.AddEquality(count, sum)
		contribs = append(contribs, WeightedVar{Var: count, Coeff: int64(w.Location)})
		entries = append(entries, Entry{Component: ComponentLocation, PersonIdx: pi, Units: count, Weight: w.Location})
	}
	return contribs, entries
}
