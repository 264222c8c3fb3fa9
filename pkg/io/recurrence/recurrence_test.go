package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

func TestExpand_WeeklyOnSunday(t *testing.T) {
	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	teamsPerDate, err := Expand(Override{
		RRule:           "FREQ=WEEKLY;BYDAY=SU",
		Start:           start,
		Until:           until,
		TeamsPerWeekday: map[time.Weekday]int{time.Sunday: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, teamsPerDate[model.Date("2026-08-02")])
	assert.Equal(t, 1, teamsPerDate[model.Date("2026-08-09")])
	assert.NotContains(t, teamsPerDate, model.Date("2026-08-03"))
}

func TestExpand_InvalidRRule(t *testing.T) {
	_, err := Expand(Override{RRule: "NOT_AN_RRULE", Start: time.Now().Add(-time.Hour), Until: time.Now()})
	assert.Error(t, err)
}

func TestMergeInto(t *testing.T) {
	dst := map[model.Date]int{"2026-08-02": 1}
	src := map[model.Date]int{"2026-08-02": 1, "2026-08-09": 2}
	MergeInto(dst, src)
	assert.Equal(t, 2, dst[model.Date("2026-08-02")])
	assert.Equal(t, 2, dst[model.Date("2026-08-09")])
}
