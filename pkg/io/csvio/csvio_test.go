package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/project"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

func TestParsePersons(t *testing.T) {
	csv := "name,role,month_max,month_avg,preferred_location,2026-08-03,2026-08-04\n" +
		"alice,T,4,2,lab,true,false\n" +
		"bob,P,,,,,\n"

	persons, err := ParsePersons(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, persons, 2)

	assert.Equal(t, "alice", persons[0].Name)
	assert.Equal(t, model.RoleSenior, persons[0].Role)
	assert.Equal(t, 4, persons[0].MonthMax)
	assert.Equal(t, 2, persons[0].MonthAvg)
	assert.Equal(t, "lab", persons[0].PreferredLocation)
	assert.True(t, persons[0].Availability[model.Date("2026-08-03")])
	assert.False(t, persons[0].Availability[model.Date("2026-08-04")])

	assert.Equal(t, "bob", persons[1].Name)
	assert.Equal(t, model.RolePeer, persons[1].Role)
	assert.True(t, persons[1].IsAvailable(model.Date("2026-08-03")))
}

func TestParsePersons_LocationFlags(t *testing.T) {
	csv := "name,role,flag:Amsterdam,flag:Rotterdam\n" +
		"alice,T,0,1\n" +
		"bob,P,,2\n"

	persons, err := ParsePersons(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, persons, 2)

	assert.Equal(t, model.LocationForbidden, persons[0].LocationFlagFor("Amsterdam"))
	assert.Equal(t, model.LocationPenalized, persons[0].LocationFlagFor("Rotterdam"))
	assert.Equal(t, model.LocationNeutral, persons[0].LocationFlagFor("Utrecht"))

	assert.Equal(t, model.LocationNeutral, persons[1].LocationFlagFor("Amsterdam"))
	assert.Equal(t, model.LocationNeutral, persons[1].LocationFlagFor("Rotterdam"))
}

func TestParsePersons_InvalidLocationFlag(t *testing.T) {
	csv := "name,role,flag:Amsterdam\n" +
		"alice,T,maybe\n"

	_, err := ParsePersons(strings.NewReader(csv))
	require.Error(t, err)
}

func TestFilledShiftsRoundTrip_BracketList(t *testing.T) {
	shifts := []project.FilledShift{
		{Location: "lab", Date: "2026-08-03", Weekday: "mon", ISOWeek: 202632, TeamIndex: 0, Testers: []string{"alice", "bob"}},
		{Location: "lab", Date: "2026-08-04", Weekday: "tue", ISOWeek: 202632, TeamIndex: 0, Testers: []string{"carol"}},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportFilledShifts(&buf, shifts, TestersBracketList))

	parsed, err := ParseFilledShifts(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{"alice", "bob"}, parsed[0].Testers)
	assert.Equal(t, []string{"carol"}, parsed[1].Testers)
}

func TestFilledShiftsRoundTrip_SplitColumns(t *testing.T) {
	shifts := []project.FilledShift{
		{Location: "lab", Date: "2026-08-03", Weekday: "mon", ISOWeek: 202632, TeamIndex: 0, Testers: []string{"alice", "bob"}},
		{Location: "lab", Date: "2026-08-04", Weekday: "tue", ISOWeek: 202632, TeamIndex: 0, Testers: []string{"carol"}},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportFilledShifts(&buf, shifts, TestersSplitColumns))

	parsed, err := ParseFilledShifts(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{"alice", "bob"}, parsed[0].Testers)
	assert.Equal(t, []string{"carol"}, parsed[1].Testers)
}

func TestExportPenalties(t *testing.T) {
	rows := []project.PenaltyRow{
		{Component: "location", Person: "alice", ScopeKey: "", Units: 3, Weighted: 9},
	}
	var buf bytes.Buffer
	require.NoError(t, ExportPenalties(&buf, rows))
	assert.Contains(t, buf.String(), "location,alice,,3,9")
}
