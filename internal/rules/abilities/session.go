// Package abilities generates the six ability scores of a new character.
//
// A Session is a value: every transition returns a new Session and a Result.
// A rejected transition returns the input unchanged with the reason set, so
// callers never need to diff state to find out whether something happened.
package abilities

import (
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

// Method is an ability score generation method
type Method string

// Generation methods
const (
	MethodPointBuy      Method = "point_buy"
	MethodStandardArray Method = "standard_array"
	MethodDice          Method = "dice"
)

// IsValid reports whether m is a known method
func (m Method) IsValid() bool {
	switch m {
	case MethodPointBuy, MethodStandardArray, MethodDice:
		return true
	default:
		return false
	}
}

// RejectionReason explains why a transition was not applied
type RejectionReason string

// Rejection reasons
const (
	ReasonUnknownMethod    RejectionReason = "unknown_method"
	ReasonWrongMethod      RejectionReason = "wrong_method"
	ReasonUnknownAbility   RejectionReason = "unknown_ability"
	ReasonInvalidDelta     RejectionReason = "invalid_delta"
	ReasonOutOfRange       RejectionReason = "out_of_range"
	ReasonOverBudget       RejectionReason = "over_budget"
	ReasonUnknownRollGroup RejectionReason = "unknown_roll_group"
	ReasonStatBound        RejectionReason = "stat_bound"
)

// Result reports the outcome of a transition
type Result struct {
	Accepted bool
	Reason   RejectionReason
}

func accept() Result {
	return Result{Accepted: true}
}

func reject(reason RejectionReason) Result {
	return Result{Reason: reason}
}

// Score bounds
const (
	BaseScore = 8

	// Free adjustment bounds used by standard-array and dice editing
	MinFreeScore = 1
	MaxFreeScore = 20
)

// Unassigned marks a roll group that is not bound to any ability
const Unassigned dnd5e.Ability = ""

// RollGroup is one 4d6 drop-lowest roll
type RollGroup struct {
	ID string `json:"id"`
	// Dice holds all four dice sorted highest first
	Dice       []int         `json:"dice"`
	Total      int           `json:"total"`
	AssignedTo dnd5e.Ability `json:"assigned_to,omitempty"`
}

// Session is the in-progress ability score build
type Session struct {
	Method     Method              `json:"method"`
	Scores     dnd5e.AbilityScores `json:"scores"`
	RollGroups []RollGroup         `json:"roll_groups,omitempty"`
}

// NewSession starts a point-buy session with every score at base
func NewSession() Session {
	return Session{
		Method: MethodPointBuy,
		Scores: dnd5e.UniformScores(BaseScore),
	}
}

// SelectMethod switches method and resets every score to base. Existing roll
// groups are kept but lose their assignments.
func (s Session) SelectMethod(method Method) (Session, Result) {
	if !method.IsValid() {
		return s, reject(ReasonUnknownMethod)
	}

	next := s.clone()
	next.Method = method
	next.Scores = dnd5e.UniformScores(BaseScore)
	for i := range next.RollGroups {
		next.RollGroups[i].AssignedTo = Unassigned
	}
	return next, accept()
}

// AdjustScore steps one ability by ±1 within [1,20]. Allowed in
// standard-array mode and for unbound abilities in dice mode. Standard-array
// mode does not require the result to be a permutation of the array; see
// IsStandardArrayPermutation.
func (s Session) AdjustScore(ability dnd5e.Ability, delta int) (Session, Result) {
	if s.Method != MethodStandardArray && s.Method != MethodDice {
		return s, reject(ReasonWrongMethod)
	}
	if !ability.IsValid() {
		return s, reject(ReasonUnknownAbility)
	}
	if delta != 1 && delta != -1 {
		return s, reject(ReasonInvalidDelta)
	}
	if s.Method == MethodDice && s.boundGroup(ability) >= 0 {
		return s, reject(ReasonStatBound)
	}

	value := s.Scores.Get(ability) + delta
	if value < MinFreeScore || value > MaxFreeScore {
		return s, reject(ReasonOutOfRange)
	}

	next := s.clone()
	next.Scores = next.Scores.With(ability, value)
	return next, accept()
}

func (s Session) clone() Session {
	next := s
	if s.RollGroups != nil {
		next.RollGroups = make([]RollGroup, len(s.RollGroups))
		for i, group := range s.RollGroups {
			group.Dice = append([]int(nil), group.Dice...)
			next.RollGroups[i] = group
		}
	}
	return next
}

// boundGroup returns the index of the roll group bound to ability, or -1
func (s Session) boundGroup(ability dnd5e.Ability) int {
	for i, group := range s.RollGroups {
		if group.AssignedTo == ability {
			return i
		}
	}
	return -1
}
