package solver

import (
	"context"
	"testing"
	"time"

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

func TestDriver_Solve_FeasibleModel(t *testing.T) {
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

	driver := New(nil, Params{TimeLimit: 5 * time.Second})
	result, err := driver.Solve(context.Background(), grid)
	require.NoError(t, err)
	assert.True(t, result.Status.Success())
}

func TestDriver_Solve_InfeasibleModel(t *testing.T) {
	d := mustDate(t, "2026-08-03")
	persons := []model.Person{
		{Name: "alice", Role: model.RolePeer, Availability: map[model.Date]bool{d: true}},
	}
	locations := []model.Location{
		{Name: "lab", AllowTester: false, AllowPeer: true, TeamsPerDate: map[model.Date]int{d: 1}},
	}
	horizon := map[model.Date]bool{d: true}
	slots := model.BuildShiftSlots(locations, horizon)

	grid := modelbuilder.New(persons, slots)
	constraints.ApplyAll(grid, constraints.Options{})

	driver := New(nil, Params{})
	result, err := driver.Solve(context.Background(), grid)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, result.Status)
	assert.False(t, result.Status.Success())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "OPTIMAL", StatusOptimal.String())
	assert.Equal(t, "TIMEOUT", StatusTimeout.String())
}
