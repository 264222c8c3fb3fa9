package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/constraints"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/objective"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/solver"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

// Scenario 1 from §8: 3 people (T, T, P), one peer-allowed location, two
// dates each demanding 1 team, all available. Expect 2 slots filled, each
// with exactly one T and one P.
func TestProject_MinimalFeasible(t *testing.T) {
	d1 := mustDate(t, "2026-08-03")
	d2 := mustDate(t, "2026-08-04")
	avail := map[model.Date]bool{d1: true, d2: true}
	persons := []model.Person{
		{Name: "alice", Role: model.RoleSenior, Availability: avail},
		{Name: "carol", Role: model.RoleSenior, Availability: avail},
		{Name: "bob", Role: model.RolePeer, Availability: avail},
	}
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: true, TeamsPerDate: map[model.Date]int{d1: 1, d2: 1}},
	}
	horizon := map[model.Date]bool{d1: true, d2: true}
	slots := model.BuildShiftSlots(locations, horizon)

	grid := modelbuilder.New(persons, slots)
	constraints.ApplyAll(grid, constraints.Options{})
	built := objective.BuildAll(grid, objective.Weights{Fairness: 1})

	driver := solver.New(nil, solver.Params{})
	result, err := driver.Solve(context.Background(), grid)
	require.NoError(t, err)
	require.True(t, result.Status.Success())

	success, failure := Project(grid, built, result)
	require.Nil(t, failure)
	require.NotNil(t, success)
	require.Len(t, success.FilledShifts, 2)

	for _, fs := range success.FilledShifts {
		require.Len(t, fs.Testers, 2)
		var seniors, peers int
		for _, name := range fs.Testers {
			for _, p := range persons {
				if p.Name == name && p.Role == model.RoleSenior {
					seniors++
				}
				if p.Name == name && p.Role == model.RolePeer {
					peers++
				}
			}
		}
		assert.Equal(t, 1, seniors)
		assert.Equal(t, 1, peers)
	}
}

// Scenario 3 from §8: single-senior squeeze is INFEASIBLE; the diagnostic
// for that date/location blames availability.
func TestProject_SingleSeniorSqueeze_Diagnostics(t *testing.T) {
	d := mustDate(t, "2026-08-03")
	avail := map[model.Date]bool{d: true}
	persons := []model.Person{
		{Name: "alice", Role: model.RoleSenior, Availability: avail},
		{Name: "bob", Role: model.RolePeer, Availability: avail},
		{Name: "carol", Role: model.RolePeer, Availability: avail},
		{Name: "dave", Role: model.RolePeer, Availability: avail},
	}
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: true, TeamsPerDate: map[model.Date]int{d: 2}},
	}
	horizon := map[model.Date]bool{d: true}
	slots := model.BuildShiftSlots(locations, horizon)

	grid := modelbuilder.New(persons, slots)
	constraints.ApplyAll(grid, constraints.Options{})
	built := objective.BuildAll(grid, objective.Weights{})

	driver := solver.New(nil, solver.Params{})
	result, err := driver.Solve(context.Background(), grid)
	require.NoError(t, err)
	assert.Equal(t, solver.StatusInfeasible, result.Status)

	success, failure := Project(grid, built, result)
	require.Nil(t, success)
	require.NotNil(t, failure)
	require.Len(t, failure.Diagnostics, 1)
	assert.Equal(t, "lab", failure.Diagnostics[0].Location)
	assert.Equal(t, 2, failure.Diagnostics[0].Required)
	assert.True(t, failure.Diagnostics[0].BlameAvailability)
}
