package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/solver"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

// Scenario 1 from §8, driven end to end through Run rather than the
// individual core packages.
func TestRun_MinimalFeasible(t *testing.T) {
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

	result, err := Run(context.Background(), nil, Input{
		Persons:   persons,
		Locations: locations,
		Weights:   map[string]int{"fairness": 1},
	})
	require.NoError(t, err)
	require.True(t, result.Status.Success())
	require.NotNil(t, result.Success)
	require.Nil(t, result.Failure)
	assert.Len(t, result.Success.FilledShifts, 2)
}

// Scenario 3 from §8, through Run: single-senior squeeze is infeasible and
// diagnostics are returned instead of an error.
func TestRun_SingleSeniorSqueeze_ReturnsDiagnosticsNotError(t *testing.T) {
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

	result, err := Run(context.Background(), nil, Input{Persons: persons, Locations: locations})
	require.NoError(t, err)
	assert.Equal(t, solver.StatusInfeasible, result.Status)
	require.NotNil(t, result.Failure)
	require.Nil(t, result.Success)
	require.Len(t, result.Failure.Diagnostics, 1)
}

// §7 input-validation error: a malformed person record aborts the call
// before model construction, without reaching the solver.
func TestRun_InvalidPersonAbortsBeforeModelBuild(t *testing.T) {
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: true},
	}
	_, err := Run(context.Background(), nil, Input{
		Persons:   []model.Person{{Name: "", Role: model.RoleSenior}},
		Locations: locations,
	})
	require.Error(t, err)
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
}

// §7 model-build error: duplicate person names are an internal invariant
// violation, not a user-facing infeasibility.
func TestRun_DuplicatePersonNamesIsBuildError(t *testing.T) {
	d := mustDate(t, "2026-08-03")
	avail := map[model.Date]bool{d: true}
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: true, TeamsPerDate: map[model.Date]int{d: 1}},
	}
	_, err := Run(context.Background(), nil, Input{
		Persons: []model.Person{
			{Name: "alice", Role: model.RoleSenior, Availability: avail},
			{Name: "alice", Role: model.RolePeer, Availability: avail},
		},
		Locations: locations,
	})
	require.Error(t, err)
	var berr *BuildError
	assert.ErrorAs(t, err, &berr)
}
