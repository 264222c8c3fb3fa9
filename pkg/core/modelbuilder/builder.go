// Package modelbuilder creates the dense decision-variable grid the rest
// of the core builds constraints and objective terms over (§4.1).
package modelbuilder

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// Grid is the Model Builder's output: one BoolVar per (person, slot) pair,
// addressable by index, plus the CP-SAT builder constraint producers and
// objective-term producers add to.
//
// The Grid is stateful only during construction; once Solve runs, the
// underlying CpModelBuilder is treated as immutable by every consumer.
type Grid struct {
	Builder *cpmodel.Builder

	Persons []model.Person
	Slots   []model.ShiftSlot

	// x[p][s] is 1 iff Persons[p] is assigned to Slots[s].
	x [][]cpmodel.BoolVar
}

// New creates one boolean variable per (person, slot) pair. Persons and
// slots are consumed in the order the caller supplies them (§5 ordering
// guarantees): callers are responsible for sorting both beforehand.
func New(persons []model.Person, slots []model.ShiftSlot) *Grid {
	b := cpmodel.NewCpModelBuilder()

	x := make([][]cpmodel.BoolVar, len(persons))
	for pi, p := range persons {
		row := make([]cpmodel.BoolVar, len(slots))
		for si, s := range slots {
			row[si] = b.NewBoolVar().WithName(fmt.Sprintf("x_p%d_s%d_%s_%s_t%d", pi, si, p.Name, s.Location, s.TeamIndex))
		}
		x[pi] = row
	}

	return &Grid{
		Builder: b,
		Persons: persons,
		Slots:   slots,
		x:       x,
	}
}

// Var returns the decision variable for (person index pi, slot index si).
func (g *Grid) Var(pi, si int) cpmodel.BoolVar {
	return g.x[pi][si]
}

// NumPersons returns |Persons|.
func (g *Grid) NumPersons() int { return len(g.Persons) }

// NumSlots returns |Slots|.
func (g *Grid) NumSlots() int { return len(g.Slots) }

// SlotsOnDate returns the indices of slots occurring on d.
func (g *Grid) SlotsOnDate(d model.Date) []int {
	var idx []int
	for si, s := range g.Slots {
		if s.Date == d {
			idx = append(idx, si)
		}
	}
	return idx
}

// SlotsInWeek returns the indices of slots whose ISOWeek equals w.
func (g *Grid) SlotsInWeek(w int) []int {
	var idx []int
	for si, s := range g.Slots {
		if s.ISOWeek == w {
			idx = append(idx, si)
		}
	}
	return idx
}

// SlotsInMonth returns the indices of slots whose Month equals m.
func (g *Grid) SlotsInMonth(m int) []int {
	var idx []int
	for si, s := range g.Slots {
		if s.Month == m {
			idx = append(idx, si)
		}
	}
	return idx
}

// Dates returns the distinct dates across all slots, sorted.
func (g *Grid) Dates() []model.Date {
	return sortedUniqueDates(g.Slots)
}

// ISOWeeks returns the distinct ISO-week keys across all slots, sorted.
func (g *Grid) ISOWeeks() []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range g.Slots {
		if !seen[s.ISOWeek] {
			seen[s.ISOWeek] = true
			out = append(out, s.ISOWeek)
		}
	}
	sortInts(out)
	return out
}

// Months returns the distinct month keys across all slots, sorted.
func (g *Grid) Months() []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range g.Slots {
		if !seen[s.Month] {
			seen[s.Month] = true
			out = append(out, s.Month)
		}
	}
	sortInts(out)
	return out
}

func sortedUniqueDates(slots []model.ShiftSlot) []model.Date {
	seen := make(map[model.Date]bool)
	var out []model.Date
	for _, s := range slots {
		if !seen[s.Date] {
			seen[s.Date] = true
			out = append(out, s.Date)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Before(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
