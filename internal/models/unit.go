package models

import (
	"time"
)

// UnitMember is one person in a housing group, carrying their own budget
// range and dealbreakers.
type UnitMember struct {
	Name         string        `json:"name"`
	BudgetMin    float64       `json:"budget_min"`
	BudgetMax    float64       `json:"budget_max"`
	Dealbreakers []Dealbreaker `json:"dealbreakers"`
}

// HousingUnit describes a housing group's constraints. BudgetMin/BudgetMax
// and Dealbreakers are derived from the members: the effective budget range
// is the intersection of all member ranges and the dealbreaker set is the
// union of all member dealbreakers. They are recomputed by AddMember, never
// stored stale.
type HousingUnit struct {
	ID           int64         `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	BudgetMin    float64       `json:"budget_min" db:"budget_min"`
	BudgetMax    float64       `json:"budget_max" db:"budget_max"`
	MoveInMonth  string        `json:"move_in_month" db:"move_in_month"`
	Dealbreakers []Dealbreaker `json:"dealbreakers" db:"dealbreakers"`
	Members      []UnitMember  `json:"members" db:"members"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// HousingUnitCreate represents the data needed to create a new housing unit.
type HousingUnitCreate struct {
	Name        string       `json:"name" validate:"required,min=1,max=100"`
	MoveInMonth string       `json:"move_in_month"`
	Members     []UnitMember `json:"members"`
}

// AddMember returns a new unit with the member appended and the derived
// budget intersection and dealbreaker union recomputed from scratch. The
// input unit is never mutated.
func AddMember(unit HousingUnit, member UnitMember) HousingUnit {
	out := unit
	out.Members = make([]UnitMember, 0, len(unit.Members)+1)
	out.Members = append(out.Members, unit.Members...)
	out.Members = append(out.Members, member)
	out.recomputeConstraints()
	return out
}

// RecomputeConstraints returns a copy of the unit with the derived budget
// range and dealbreaker set rebuilt from the current members. Used when
// units are loaded from storage so the derived fields can never go stale.
func RecomputeConstraints(unit HousingUnit) HousingUnit {
	out := unit
	out.recomputeConstraints()
	return out
}

func (u *HousingUnit) recomputeConstraints() {
	u.BudgetMin = 0
	u.BudgetMax = 0
	u.Dealbreakers = nil

	if len(u.Members) == 0 {
		return
	}

	u.BudgetMin = u.Members[0].BudgetMin
	u.BudgetMax = u.Members[0].BudgetMax

	seen := make(map[Dealbreaker]bool)
	for _, m := range u.Members {
		if m.BudgetMin > u.BudgetMin {
			u.BudgetMin = m.BudgetMin
		}
		if m.BudgetMax < u.BudgetMax {
			u.BudgetMax = m.BudgetMax
		}
		for _, d := range m.Dealbreakers {
			if !seen[d] {
				seen[d] = true
				u.Dealbreakers = append(u.Dealbreakers, d)
			}
		}
	}
}
