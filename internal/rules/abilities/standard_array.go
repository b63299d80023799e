package abilities

import (
	"sort"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

// StandardArray is the fixed score multiset, highest first
var StandardArray = []int{15, 14, 13, 12, 10, 8}

// ApplyDefaultDistribution assigns the standard array in sheet order
func (s Session) ApplyDefaultDistribution() (Session, Result) {
	if s.Method != MethodStandardArray {
		return s, reject(ReasonWrongMethod)
	}

	next := s.clone()
	next.Scores = dnd5e.AbilityScores{
		Str: StandardArray[0],
		Dex: StandardArray[1],
		Con: StandardArray[2],
		Int: StandardArray[3],
		Wis: StandardArray[4],
		Cha: StandardArray[5],
	}
	return next, accept()
}

// IsStandardArrayPermutation reports whether the scores use each value of
// the standard array exactly once
func IsStandardArrayPermutation(scores dnd5e.AbilityScores) bool {
	values := scores.Values()
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	for i, v := range values {
		if v != StandardArray[i] {
			return false
		}
	}
	return true
}
