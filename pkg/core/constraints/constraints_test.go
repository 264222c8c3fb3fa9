package constraints

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/modelbuilder"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func solve(t *testing.T, grid *modelbuilder.Grid) *cmpb.CpSolverResponse {
	t.Helper()
	m, err := grid.Builder.Model()
	require.NoError(t, err)
	response, err := cpmodel.SolveCpModel(m)
	require.NoError(t, err)
	return response
}

// Scenario 3 from §8: one senior, three peers, one date, two teams at a
// peer-allowed location — H5 and H6 together force two distinct seniors,
// which is impossible with only one. Expect INFEASIBLE.
func TestHardConstraints_SingleSeniorSqueezeIsInfeasible(t *testing.T) {
	d := mustDate(t, "2026-08-03")
	persons := []model.Person{
		{Name: "alice", Role: model.RoleSenior, Availability: map[model.Date]bool{d: true}},
		{Name: "bob", Role: model.RolePeer, Availability: map[model.Date]bool{d: true}},
		{Name: "carol", Role: model.RolePeer, Availability: map[model.Date]bool{d: true}},
		{Name: "dave", Role: model.RolePeer, Availability: map[model.Date]bool{d: true}},
	}
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: true, TeamsPerDate: map[model.Date]int{d: 2}},
	}
	horizon := map[model.Date]bool{d: true}
	slots := model.BuildShiftSlots(locations, horizon)
	require.Len(t, slots, 2)

	grid := modelbuilder.New(persons, slots)
	ApplyAll(grid, Options{})

	response := solve(t, grid)
	assert.Equal(t, cmpb.CpSolverStatus_INFEASIBLE, response.GetStatus())
}

// Scenario 5 from §8: a mutually-excluded pair forced into the only slot
// together is INFEASIBLE.
func TestHardConstraints_MutualExclusionIsInfeasible(t *testing.T) {
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
	ApplyAll(grid, Options{MutualExclusionPairs: [][2]string{{"alice", "bob"}}})

	response := solve(t, grid)
	assert.Equal(t, cmpb.CpSolverStatus_INFEASIBLE, response.GetStatus())
}

// A simple feasible case: one senior, one peer, one slot requiring two
// persons — the only assignment is both of them.
func TestHardConstraints_FeasibleSingleSlot(t *testing.T) {
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
	ApplyAll(grid, Options{})

	response := solve(t, grid)
	status := response.GetStatus()
	ok := status == cmpb.CpSolverStatus_OPTIMAL || status == cmpb.CpSolverStatus_FEASIBLE
	assert.True(t, ok, "expected feasible/optimal, got %v", status)
	assert.True(t, cpmodel.SolutionBooleanValue(response, grid.Var(0, 0)))
	assert.True(t, cpmodel.SolutionBooleanValue(response, grid.Var(1, 0)))
}

func TestOptions_IsEnabled(t *testing.T) {
	var empty Options
	assert.True(t, empty.IsEnabled(Availability))

	only := Options{Enabled: map[Name]bool{Availability: true}}
	assert.True(t, only.IsEnabled(Availability))
	assert.False(t, only.IsEnabled(MaxPerDay))
	assert.True(t, only.IsEnabled(LocationBan))
}
