package model

import "fmt"

// Role distinguishes the senior ("first") tester from a peer.
type Role string

const (
	RoleSenior Role = "T"
	RolePeer   Role = "P"
)

// IsValid reports whether r is one of the recognized roles.
func (r Role) IsValid() bool {
	return r == RoleSenior || r == RolePeer
}

// LocationFlag is a person's per-location preference.
type LocationFlag int

const (
	// LocationNeutral assignments contribute no penalty. It is also the
	// default for any location missing from a person's flag map.
	LocationNeutral LocationFlag = iota
	// LocationPenalized assignments are allowed but penalized (T1).
	LocationPenalized
	// LocationForbidden assignments are disallowed outright (H2).
	LocationForbidden
)

// Person is one schedulable individual (§3 of the spec).
type Person struct {
	Name string
	Role Role

	// Availability maps an ISO date to availability. A date missing from
	// the map defaults to available.
	Availability map[Date]bool

	// PrefLocationFlags maps a location name to a LocationFlag. A location
	// missing from the map defaults to LocationNeutral.
	PrefLocationFlags map[string]LocationFlag

	// PreferredLocation is the legacy single-string preference, superseded
	// by PrefLocationFlags but still accepted; see T1's fallback rule.
	PreferredLocation string

	MonthMax int
	MonthAvg int
}

// IsAvailable reports whether the person is available on d, defaulting to
// available when d is absent from Availability.
func (p Person) IsAvailable(d Date) bool {
	avail, ok := p.Availability[d]
	if !ok {
		return true
	}
	return avail
}

// LocationFlagFor returns the person's flag for loc, defaulting to
// LocationNeutral when flags are present but loc is missing, or falling
// back to the legacy PreferredLocation rule when no flags were given at
// all (T1: "If flags are absent for a person, fall back...").
func (p Person) LocationFlagFor(loc string) LocationFlag {
	if len(p.PrefLocationFlags) > 0 {
		if flag, ok := p.PrefLocationFlags[loc]; ok {
			return flag
		}
		return LocationNeutral
	}
	if p.PreferredLocation != "" && p.PreferredLocation != loc {
		return LocationPenalized
	}
	return LocationNeutral
}

// Validate checks the struct-level invariants a Person must satisfy before
// it can take part in model construction (§7 input-validation error).
func (p Person) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !p.Role.IsValid() {
		return &ValidationError{Field: "role", Reason: fmt.Sprintf("invalid role %q for person %q", p.Role, p.Name)}
	}
	if p.MonthMax < 0 {
		return &ValidationError{Field: "month_max", Reason: fmt.Sprintf("must be non-negative for person %q", p.Name)}
	}
	if p.MonthAvg < 0 {
		return &ValidationError{Field: "month_avg", Reason: fmt.Sprintf("must be non-negative for person %q", p.Name)}
	}
	for _, flag := range p.PrefLocationFlags {
		if flag != LocationNeutral && flag != LocationPenalized && flag != LocationForbidden {
			return &ValidationError{Field: "pref_location_flags", Reason: fmt.Sprintf("invalid flag for person %q", p.Name)}
		}
	}
	return nil
}
