package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// mutualExclusionsConstraint is H8: configured pairs of persons may never
// both work the same date. Names absent from the person list are ignored,
// not an error.
type mutualExclusionsConstraint struct{}

func (mutualExclusionsConstraint) Name() Name { return MutualExclusions }

func (mutualExclusionsConstraint) Apply(grid *modelbuilder.Grid, opts Options) {
	if len(opts.MutualExclusionPairs) == 0 {
		return
	}
	index := make(map[string]int, len(grid.Persons))
	for pi, p := range grid.Persons {
		index[p.Name] = pi
	}
	for _, pair := range opts.MutualExclusionPairs {
		ai, aok := index[pair[0]]
		bi, bok := index[pair[1]]
		if !aok || !bok {
			continue
		}
		for _, d := range grid.Dates() {
			expr := cpmodel.NewLinearExpr()
			for _, si := range grid.SlotsOnDate(d) {
				expr.Add(grid.Var(ai, si))
				expr.Add(grid.Var(bi, si))
			}
			grid.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(1))
		}
	}
}
