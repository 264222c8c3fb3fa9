package model

import "fmt"

// Location is one place shifts can be scheduled at (§3).
type Location struct {
	Name string

	AllowTester bool
	AllowPeer   bool

	// TeamsPerDate maps an ISO date to the number of teams required at
	// this location on that date. A location with no entry for a date has
	// no demand there.
	TeamsPerDate map[Date]int
}

// RequiredHeadcount returns k(s): 1 if the location disallows peers
// (senior-only shift), else 2 (H4).
func (l Location) RequiredHeadcount() int {
	if !l.AllowPeer {
		return 1
	}
	return 2
}

// Validate checks the struct-level invariants (§7).
func (l Location) Validate() error {
	if l.Name == "" {
		return &ValidationError{Field: "name", Reason: "location name must not be empty"}
	}
	if !l.AllowTester && !l.AllowPeer {
		return &ValidationError{Field: "allow_tester/allow_peer", Reason: fmt.Sprintf("location %q allows neither role", l.Name)}
	}
	for d, n := range l.TeamsPerDate {
		if n < 0 {
			return &ValidationError{Field: "teams_per_date", Reason: fmt.Sprintf("negative team count for %q on %s", l.Name, d)}
		}
	}
	return nil
}
