package constraints

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// maxPerWeekConstraint is H7: at most opts.WMax shifts per person per
// ISO-week. This is intentionally kept alongside T5's per-week penalty even
// though both touch the same count — see the open-question note in
// DESIGN.md.
type maxPerWeekConstraint struct{}

func (maxPerWeekConstraint) Name() Name { return MaxPerWeek }

func (maxPerWeekConstraint) Apply(grid *modelbuilder.Grid, opts Options) {
	wMax := opts.WMax
	if wMax <= 0 {
		wMax = DefaultWMax
	}
	for pi := range grid.Persons {
		for _, w := range grid.ISOWeeks() {
			expr := cpmodel.NewLinearExpr()
			for _, si := range grid.SlotsInWeek(w) {
				expr.Add(grid.Var(pi, si))
			}
			grid.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(wMax)))
		}
	}
}
