package model

import "sort"

// ShiftSlot is one required team instance at one (date, location) — the
// unit the Model Builder creates a column of decision variables for (§3).
type ShiftSlot struct {
	Location   string
	Date       Date
	Weekday    string
	ISOWeek    int
	Month      int
	TeamIndex  int

	requiredHeadcount int
}

// RequiredHeadcount returns k(s) for this slot (H4).
func (s ShiftSlot) RequiredHeadcount() int {
	return s.requiredHeadcount
}

// BuildShiftSlots derives the full, order-stable set of shift slots from a
// list of locations and a horizon of dates to consider. The slot set is
// fully determined by summing teams_per_date across locations (§3
// invariant); horizon narrows which dates are considered, per §6 input 3.
//
// Locations and the dates within each location's TeamsPerDate are iterated
// in sorted order so that slot identity (and therefore variable-grid
// column order) is reproducible across runs (§5 ordering guarantees).
func BuildShiftSlots(locations []Location, horizon map[Date]bool) []ShiftSlot {
	var slots []ShiftSlot

	sortedLocations := make([]Location, len(locations))
	copy(sortedLocations, locations)
	sort.Slice(sortedLocations, func(i, j int) bool {
		return sortedLocations[i].Name < sortedLocations[j].Name
	})

	for _, loc := range sortedLocations {
		dates := make([]Date, 0, len(loc.TeamsPerDate))
		for d := range loc.TeamsPerDate {
			if horizon != nil && !horizon[d] {
				continue
			}
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		required := loc.RequiredHeadcount()
		for _, d := range dates {
			teams := loc.TeamsPerDate[d]
			for team := 0; team < teams; team++ {
				slots = append(slots, ShiftSlot{
					Location:          loc.Name,
					Date:              d,
					Weekday:           d.Weekday(),
					ISOWeek:           d.ISOWeek(),
					Month:             d.Month(),
					TeamIndex:         team,
					requiredHeadcount: required,
				})
			}
		}
	}

	return slots
}
