// Package objective implements the Soft Objective Builder (§4.3): one
// producer per term T1–T7, each consuming the variable grid and emitting
// auxiliary variables plus a weighted contribution to MINIMIZE Σ terms.
//
// Every producer builds its auxiliary variables unconditionally, even when
// its weight is zero — the spec requires that zero-weight terms stay wired
// into the model, just without contributing to the sum.
package objective

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
)

// Weights are the externally configured non-negative integer coefficients
// from §4.3. T4's weight is folded into its cost table rather than applied
// here.
type Weights struct {
	Location         int // w_loc (T1)
	Fairness         int // w_fair (T2)
	Monthly          int // w_month (T3)
	MonthlyAvg       int // w_avg (T4, scaled into its cost table)
	WeeklyMulti      int // w_week_multi (T5)
	MonthlyMinAvail  int // w_month_min (T6)
	LocationFairness int // w_loc_fair (T7, optional)
}

// Component names the seven terms, matching the penalty-breakdown
// "component" field (§4.5).
type Component string

const (
	ComponentLocation         Component = "location"
	ComponentFairness         Component = "fairness"
	ComponentMonthlyCap       Component = "monthly_cap"
	ComponentMonthlyAvg       Component = "monthly_avg"
	ComponentWeeklyMulti      Component = "weekly_multi"
	ComponentMonthlyMinAvail  Component = "monthly_min_avail"
	ComponentLocationFairness Component = "location_fairness"
)

// Entry is one potential penalty-breakdown row: a scoped, weighted count
// that the Result Projector reads post-solve to emit only the non-zero
// instances (§4.5).
type Entry struct {
	Component Component
	// PersonIdx is the index into grid.Persons this entry scopes to, or -1
	// for terms scoped to the whole model (T2, T7 span variables).
	PersonIdx int
	// ScopeKey is a human-readable scope label (a month or ISO-week key),
	// empty when the entry is not month/week scoped.
	ScopeKey string
	// Units is the raw integer count read from the solved model. It is
	// either an IntVar (most terms) or a BoolVar (T6's miss indicator);
	// read it with the matching Solution*Value helper.
	Units cpmodel.LinearArgument
	// Weight is the configured weight for this component. Quadratic is
	// true only for T4, where weighted = weight * units^2 rather than
	// weight * units.
	Weight    int
	Quadratic bool
}

// Built is everything the objective stage produced: the expression handed
// to Minimize, plus the breakdown entries for post-solve reporting.
type Built struct {
	Expr    *cpmodel.LinearExpr
	Entries []Entry
}

// WeightedVar is one additive contribution to the objective expression:
// Coeff * Var.
type WeightedVar struct {
	Var   cpmodel.LinearArgument
	Coeff int64
}

// Term is one producer from the T1–T7 table.
type Term interface {
	Component() Component
	Build(grid *modelbuilder.Grid, w Weights) ([]WeightedVar, []Entry)
}

// BuildAll runs every term in T1..T7 order and combines their weighted
// contributions into a single expression to pass to grid.Builder.Minimize.
func BuildAll(grid *modelbuilder.Grid, w Weights) *Built {
	terms := []Term{
		locationTerm{},
		fairnessTerm{},
		monthlyCapTerm{},
		monthlyAvgTerm{},
		weeklyMultiTerm{},
		monthlyMinAvailTerm{},
		locationFairnessTerm{},
	}

	expr := cpmodel.NewConstant(0)
	var entries []Entry
	for _, t := range terms {
		contribs, e := t.Build(grid, w)
		for _, c := range contribs {
			expr.AddTerm(c.Var, c.Coeff)
		}
		entries = append(entries, e...)
	}
	grid.Builder.Minimize(expr)
	return &Built{Expr: expr, Entries: entries}
}
