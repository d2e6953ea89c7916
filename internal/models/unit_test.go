package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMember_BudgetIntersection(t *testing.T) {
	unit := HousingUnit{Name: "group", MoveInMonth: "2025-09"}

	unit = AddMember(unit, UnitMember{Name: "a", BudgetMin: 500, BudgetMax: 1000})
	assert.Equal(t, float64(500), unit.BudgetMin)
	assert.Equal(t, float64(1000), unit.BudgetMax)

	unit = AddMember(unit, UnitMember{Name: "b", BudgetMin: 650, BudgetMax: 900})
	assert.Equal(t, float64(650), unit.BudgetMin, "min is the max of member minimums")
	assert.Equal(t, float64(900), unit.BudgetMax, "max is the min of member maximums")

	unit = AddMember(unit, UnitMember{Name: "c", BudgetMin: 400, BudgetMax: 800})
	assert.Equal(t, float64(650), unit.BudgetMin)
	assert.Equal(t, float64(800), unit.BudgetMax)
}

func TestAddMember_DealbreakerUnion(t *testing.T) {
	unit := HousingUnit{Name: "group"}

	unit = AddMember(unit, UnitMember{
		Name: "a", BudgetMin: 500, BudgetMax: 1000,
		Dealbreakers: []Dealbreaker{DealbreakerPetFree},
	})
	unit = AddMember(unit, UnitMember{
		Name: "b", BudgetMin: 500, BudgetMax: 1000,
		Dealbreakers: []Dealbreaker{DealbreakerPetFree, DealbreakerQuiet},
	})

	assert.Equal(t, []Dealbreaker{DealbreakerPetFree, DealbreakerQuiet}, unit.Dealbreakers,
		"union without duplicates, first-seen order")
}

func TestAddMember_DoesNotMutateInput(t *testing.T) {
	original := AddMember(HousingUnit{Name: "group"}, UnitMember{Name: "a", BudgetMin: 500, BudgetMax: 1000})

	grown := AddMember(original, UnitMember{Name: "b", BudgetMin: 700, BudgetMax: 800})

	assert.Len(t, original.Members, 1)
	assert.Equal(t, float64(500), original.BudgetMin)
	assert.Len(t, grown.Members, 2)
	assert.Equal(t, float64(700), grown.BudgetMin)
}

func TestRecomputeConstraints_EmptyUnit(t *testing.T) {
	unit := RecomputeConstraints(HousingUnit{Name: "empty", BudgetMin: 100, BudgetMax: 200})

	assert.Zero(t, unit.BudgetMin)
	assert.Zero(t, unit.BudgetMax)
	assert.Empty(t, unit.Dealbreakers)
}

func TestListingMoveInMonth(t *testing.T) {
	listing := Listing{MoveInDate: "2025-09-01"}
	assert.Equal(t, "2025-09", listing.MoveInMonth())

	listing.MoveInDate = "2025-09"
	assert.Equal(t, "2025-09", listing.MoveInMonth())

	listing.MoveInDate = ""
	assert.Equal(t, "", listing.MoveInMonth())
}
