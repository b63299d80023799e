package abilities

import (
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

// Point-buy limits
const (
	PointBuyBudget = 27
	PointBuyMin    = 8
	PointBuyMax    = 15

	// InvalidCost is returned for scores outside the point-buy range
	InvalidCost = -1
)

var pointBuyCosts = map[int]int{
	8:  0,
	9:  1,
	10: 2,
	11: 3,
	12: 4,
	13: 5,
	14: 7,
	15: 9,
}

// PointCost returns the point-buy cost of a single score, or InvalidCost
func PointCost(score int) int {
	cost, ok := pointBuyCosts[score]
	if !ok {
		return InvalidCost
	}
	return cost
}

// PointsSpent totals the cost of all six scores. The second return is false
// when any score is outside the point-buy range.
func PointsSpent(scores dnd5e.AbilityScores) (int, bool) {
	total := 0
	for _, value := range scores.Values() {
		cost := PointCost(value)
		if cost == InvalidCost {
			return 0, false
		}
		total += cost
	}
	return total, true
}

// PointsRemaining returns the unspent budget of a point-buy session
func (s Session) PointsRemaining() int {
	spent, ok := PointsSpent(s.Scores)
	if !ok {
		return 0
	}
	return PointBuyBudget - spent
}

// ApplyDelta raises or lowers one ability by one point under point-buy
func (s Session) ApplyDelta(ability dnd5e.Ability, delta int) (Session, Result) {
	if s.Method != MethodPointBuy {
		return s, reject(ReasonWrongMethod)
	}
	if !ability.IsValid() {
		return s, reject(ReasonUnknownAbility)
	}
	if delta != 1 && delta != -1 {
		return s, reject(ReasonInvalidDelta)
	}

	value := s.Scores.Get(ability) + delta
	if value < PointBuyMin || value > PointBuyMax {
		return s, reject(ReasonOutOfRange)
	}

	proposed := s.Scores.With(ability, value)
	spent, ok := PointsSpent(proposed)
	if !ok {
		return s, reject(ReasonOutOfRange)
	}
	if spent > PointBuyBudget {
		return s, reject(ReasonOverBudget)
	}

	next := s.clone()
	next.Scores = proposed
	return next, accept()
}
