// Package constraints implements the Hard Constraint Set (§4.2): one
// producer per rule H1–H8, each consuming the variable grid and emitting
// linear constraints into the underlying CP-SAT model.
package constraints

import "github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"

// Name identifies an enabled/disabled hard constraint, matching the
// enabled_constraints vocabulary of §6 input 6.
type Name string

const (
	Availability     Name = "availability"
	LocationBan      Name = "location_ban"
	MaxPerDay        Name = "max_per_day"
	ExactTesters     Name = "exact_testers"
	MinFirst         Name = "min_first"
	SingleFirst      Name = "single_first"
	MaxPerWeek       Name = "max_per_week"
	MutualExclusions Name = "mutual_exclusions"
)

// All is the full set of hard constraints, in the order §4.2 lists them.
var All = []Name{Availability, LocationBan, MaxPerDay, ExactTesters, MinFirst, SingleFirst, MaxPerWeek, MutualExclusions}

// Options configures constraint behavior that the spec calls out as
// externally tunable.
type Options struct {
	// WMax is H7's weekly cap (default 2). Spec.md §9 open question:
	// preserved as a hard cap even though T5 also soft-penalizes the 2nd
	// shift in a week; exposed here as a configurable integer rather than
	// a compile-time constant.
	WMax int

	// MutualExclusionPairs is H8's configured set of unordered person-name
	// pairs. Pairs naming an unknown person are silently skipped by the
	// producer, not an error (§4.2 tie-break policy).
	MutualExclusionPairs [][2]string

	// Enabled is the subset of hard constraints to apply; nil/empty means
	// all of All (§6 input 6 default).
	Enabled map[Name]bool
}

// DefaultWMax is H7's default weekly cap.
const DefaultWMax = 2

// IsEnabled reports whether name should be applied under opts. LocationBan
// (H2) and MutualExclusions (H8) are not part of §6 input 6's
// enabled_constraints vocabulary and are mandatory regardless of opts.Enabled
// (§8 universal invariants "Hard ban" and "Mutual exclusions") — a caller
// that passes an explicit toggle set naming only the six spec vocabulary
// entries must not be able to silently turn either off.
func (o Options) IsEnabled(name Name) bool {
	if name == LocationBan || name == MutualExclusions {
		return true
	}
	if len(o.Enabled) == 0 {
		return true
	}
	return o.Enabled[name]
}

// HardConstraint is one producer from the H1–H8 table: it consumes the
// grid and emits constraints into grid.Builder. It never returns a value;
// infeasibility is discovered later by the solver, not by the producer.
type HardConstraint interface {
	Name() Name
	Apply(grid *modelbuilder.Grid, opts Options)
}

// ApplyAll runs every enabled constraint against grid, in H1..H8 order, so
// that emitted-constraint order (and therefore solver behavior) is
// reproducible across runs (§5 ordering guarantees).
func ApplyAll(grid *modelbuilder.Grid, opts Options) {
	producers := []HardConstraint{
		availabilityConstraint{},
		locationBanConstraint{},
		maxPerDayConstraint{},
		exactTestersConstraint{},
		minFirstConstraint{},
		singleFirstConstraint{},
		maxPerWeekConstraint{},
		mutualExclusionsConstraint{},
	}

	for _, p := range producers {
		if opts.IsEnabled(p.Name()) {
			p.Apply(grid, opts)
		}
	}
}
