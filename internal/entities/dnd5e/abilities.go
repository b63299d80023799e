// Package dnd5e holds the D&D 5e entities persisted and returned by the
// builder service.
package dnd5e

// Ability is one of the six ability score keys
type Ability string

// Ability keys, matching the persisted column names
const (
	AbilityStrength     Ability = "str"
	AbilityDexterity    Ability = "dex"
	AbilityConstitution Ability = "con"
	AbilityIntelligence Ability = "int"
	AbilityWisdom       Ability = "wis"
	AbilityCharisma     Ability = "cha"
)

// AllAbilities lists the abilities in sheet order
var AllAbilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// IsValid reports whether a is one of the six known abilities
func (a Ability) IsValid() bool {
	switch a {
	case AbilityStrength, AbilityDexterity, AbilityConstitution,
		AbilityIntelligence, AbilityWisdom, AbilityCharisma:
		return true
	default:
		return false
	}
}

// AbilityScores holds the six core ability scores
type AbilityScores struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// UniformScores returns a set with every ability at value
func UniformScores(value int) AbilityScores {
	return AbilityScores{Str: value, Dex: value, Con: value, Int: value, Wis: value, Cha: value}
}

// Get returns the score for an ability, 0 for unknown keys
func (s AbilityScores) Get(a Ability) int {
	switch a {
	case AbilityStrength:
		return s.Str
	case AbilityDexterity:
		return s.Dex
	case AbilityConstitution:
		return s.Con
	case AbilityIntelligence:
		return s.Int
	case AbilityWisdom:
		return s.Wis
	case AbilityCharisma:
		return s.Cha
	default:
		return 0
	}
}

// With returns a copy of s with one ability replaced. Unknown keys leave
// the set unchanged.
func (s AbilityScores) With(a Ability, value int) AbilityScores {
	switch a {
	case AbilityStrength:
		s.Str = value
	case AbilityDexterity:
		s.Dex = value
	case AbilityConstitution:
		s.Con = value
	case AbilityIntelligence:
		s.Int = value
	case AbilityWisdom:
		s.Wis = value
	case AbilityCharisma:
		s.Cha = value
	}
	return s
}

// Values returns the scores in sheet order
func (s AbilityScores) Values() []int {
	return []int{s.Str, s.Dex, s.Con, s.Int, s.Wis, s.Cha}
}
