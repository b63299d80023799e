package dnd5e

// CasterType is a class's spell progression category
type CasterType string

// Caster types
const (
	CasterTypeFull    CasterType = "full"
	CasterTypeHalf    CasterType = "half"
	CasterTypeWarlock CasterType = "warlock"
	CasterTypeNone    CasterType = "none"
)

// Feature is a class feature unlocked at a level
type Feature struct {
	Name        string
	ClassKey    string
	Level       int
	Description string
}

// Spell is a spell available to one or more classes. Level 0 is a cantrip.
type Spell struct {
	Name   string
	Level  int
	School string
}
