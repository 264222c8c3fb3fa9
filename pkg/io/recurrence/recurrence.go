// Package recurrence implements the recurring-demand collaborator (§10.5,
// supplemented): expanding an RRULE plus a per-weekday team-count map into
// concrete teams_per_date entries, instead of requiring every date to be
// listed by hand.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// Override is one recurring-demand rule: RRule governs which dates within
// [Start, Until] recur, and TeamsPerWeekday gives the team count on each
// matching weekday. A weekday absent from TeamsPerWeekday contributes no
// demand even if the rule matches that date.
type Override struct {
	RRule           string
	Start           time.Time
	Until           time.Time
	TeamsPerWeekday map[time.Weekday]int
}

// Expand validates the RRULE syntax and returns the teams_per_date map it
// implies, to be merged into a Location's TeamsPerDate.
func Expand(o Override) (map[model.Date]int, error) {
	rule, err := rrule.StrToRRule(o.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", o.RRule, err)
	}
	rule.DTStart(o.Start)

	teamsPerDate := make(map[model.Date]int)
	for _, t := range rule.Between(o.Start, o.Until, true) {
		teams, ok := o.TeamsPerWeekday[t.Weekday()]
		if !ok || teams == 0 {
			continue
		}
		d, err := model.ParseDate(t.Format("2006-01-02"))
		if err != nil {
			return nil, fmt.Errorf("recurrence produced invalid date: %w", err)
		}
		teamsPerDate[d] = teams
	}
	return teamsPerDate, nil
}

// MergeInto adds src's counts into dst, summing where a date already has
// demand from another override rather than overwriting it.
func MergeInto(dst map[model.Date]int, src map[model.Date]int) {
	for d, n := range src {
		dst[d] += n
	}
}
