package objective

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/constraints"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

// Testable property 4 from §8: two people each with month_avg = 4 over a
// one-month horizon with four slots requiring two persons per shift (eight
// person-slots total). With only two persons, both must work every slot,
// so each hits exactly 4 and the quadratic deficit term is 0. The dates
// fall in four different ISO weeks so H7's weekly cap of 2 does not bind.
func TestMonthlyAvgTerm_BothHitTargetYieldsZeroCost(t *testing.T) {
	dates := []model.Date{
		mustDate(t, "2026-08-03"),
		mustDate(t, "2026-08-10"),
		mustDate(t, "2026-08-17"),
		mustDate(t, "2026-08-24"),
	}
	horizon := map[model.Date]bool{}
	teamsPerDate := map[model.Date]int{}
	for _, d := range dates {
		horizon[d] = true
		teamsPerDate[d] = 1
	}

	availability := map[model.Date]bool{}
	for _, d := range dates {
		availability[d] = true
	}
	persons := []model.Person{
		{Name: "alice", Role: model.RoleSenior, Availability: availability, MonthAvg: 4},
		{Name: "bob", Role: model.RoleSenior, Availability: availability, MonthAvg: 4},
	}
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: true, TeamsPerDate: teamsPerDate},
	}
	slots := model.BuildShiftSlots(locations, horizon)
	require.Len(t, slots, 4)

	grid := modelbuilder.New(persons, slots)
	constraints.ApplyAll(grid, constraints.Options{})
	built := BuildAll(grid, Weights{MonthlyAvg: 10})

	m, err := grid.Builder.Model()
	require.NoError(t, err)
	response, err := cpmodel.SolveCpModel(m)
	require.NoError(t, err)
	status := response.GetStatus()
	require.True(t, status == cmpb.CpSolverStatus_OPTIMAL || status == cmpb.CpSolverStatus_FEASIBLE, "status=%v", status)

	assert.Equal(t, float64(0), response.GetObjectiveValue())

	var avgEntries int
	for _, e := range built.Entries {
		if e.Component == ComponentMonthlyAvg {
			avgEntries++
			deficit := cpmodel.SolutionIntegerValue(response, e.Units.(cpmodel.IntVar))
			assert.Equal(t, int64(0), deficit)
		}
	}
	assert.Equal(t, len(persons), avgEntries)
}

func TestBuildAll_ZeroWeightsStillWiresAuxiliaries(t *testing.T) {
	d := mustDate(t, "2026-08-03")
	persons := []model.Person{
		{Name: "alice", Role: model.RoleSenior, Availability: map[model.Date]bool{d: true}},
		{Name: "bob", Role: model.RolePeer, Availability: map[model.Date]bool{d: true}},
	}
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: true, TeamsPerDate: map[model.Date]int{d: 1}},
	}
	horizon := map[model.Date]bool{d: true}
	slots := model.BuildShiftSlots(locations, horizon)

	grid := modelbuilder.New(persons, slots)
	constraints.ApplyAll(grid, constraints.Options{})
	built := BuildAll(grid, Weights{})

	assert.NotEmpty(t, built.Entries)

	m, err := grid.Builder.Model()
	require.NoError(t, err)
	response, err := cpmodel.SolveCpModel(m)
	require.NoError(t, err)
	status := response.GetStatus()
	assert.True(t, status == cmpb.CpSolverStatus_OPTIMAL || status == cmpb.CpSolverStatus_FEASIBLE)
	assert.Equal(t, float64(0), response.GetObjectiveValue())
}
