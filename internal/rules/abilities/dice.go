package abilities

import (
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

const (
	dicePerGroup = 4
	diceKept     = 3
	dieSize      = 6
)

// DropLowestTotal sums the highest three of four dice
func DropLowestTotal(values []int) int {
	sorted := append([]int(nil), values...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0
	for i := 0; i < len(sorted) && i < diceKept; i++ {
		total += sorted[i]
	}
	return total
}

// RollGroup rolls 4d6 and appends the group. Only a roller failure is an
// error; wrong-method calls are rejections.
func (s Session) RollGroup(roller dice.Roller, groupID string) (Session, RollGroup, Result, error) {
	if s.Method != MethodDice {
		return s, RollGroup{}, reject(ReasonWrongMethod), nil
	}

	values, err := roller.RollN(dicePerGroup, dieSize)
	if err != nil {
		return s, RollGroup{}, Result{}, errors.Wrap(err, "failed to roll ability dice")
	}
	if len(values) != dicePerGroup {
		return s, RollGroup{}, Result{}, errors.Internalf("roller returned %d dice, expected %d", len(values), dicePerGroup)
	}

	sorted := append([]int(nil), values...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	group := RollGroup{
		ID:    groupID,
		Dice:  sorted,
		Total: DropLowestTotal(sorted),
	}

	next := s.clone()
	next.RollGroups = append(next.RollGroups, group)
	return next, group, accept(), nil
}

// Assign binds a roll group to an ability, or clears it with Unassigned.
// An ability holds at most one group: a group already bound to the target
// ability is unbound first. Unbinding leaves the ability's value as it was.
func (s Session) Assign(groupID string, ability dnd5e.Ability) (Session, Result) {
	if s.Method != MethodDice {
		return s, reject(ReasonWrongMethod)
	}
	if ability != Unassigned && !ability.IsValid() {
		return s, reject(ReasonUnknownAbility)
	}

	idx := -1
	for i, group := range s.RollGroups {
		if group.ID == groupID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, reject(ReasonUnknownRollGroup)
	}

	next := s.clone()
	if ability == Unassigned {
		next.RollGroups[idx].AssignedTo = Unassigned
		return next, accept()
	}

	if previous := next.boundGroup(ability); previous >= 0 {
		next.RollGroups[previous].AssignedTo = Unassigned
	}
	next.RollGroups[idx].AssignedTo = ability
	next.Scores = next.Scores.With(ability, next.RollGroups[idx].Total)
	return next, accept()
}

// SetScore free-edits an ability that no roll group is bound to
func (s Session) SetScore(ability dnd5e.Ability, value int) (Session, Result) {
	if s.Method != MethodDice {
		return s, reject(ReasonWrongMethod)
	}
	if !ability.IsValid() {
		return s, reject(ReasonUnknownAbility)
	}
	if s.boundGroup(ability) >= 0 {
		return s, reject(ReasonStatBound)
	}
	if value < MinFreeScore || value > MaxFreeScore {
		return s, reject(ReasonOutOfRange)
	}

	next := s.clone()
	next.Scores = next.Scores.With(ability, value)
	return next, accept()
}
