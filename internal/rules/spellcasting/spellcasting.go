// Package spellcasting gates class spells and features by character level
package spellcasting

import (
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

// Level bounds for gating
const (
	MinLevel = 1
	MaxLevel = 20

	maxFullCasterSpellLevel = 9
	maxPactSpellLevel       = 5
)

var classCasterTypes = map[string]dnd5e.CasterType{
	"bard":     dnd5e.CasterTypeFull,
	"cleric":   dnd5e.CasterTypeFull,
	"druid":    dnd5e.CasterTypeFull,
	"sorcerer": dnd5e.CasterTypeFull,
	"wizard":   dnd5e.CasterTypeFull,
	"paladin":  dnd5e.CasterTypeHalf,
	"ranger":   dnd5e.CasterTypeHalf,
	"warlock":  dnd5e.CasterTypeWarlock,
}

// CasterTypeForClass returns the caster type for a class key; unknown
// classes cast nothing
func CasterTypeForClass(classKey string) dnd5e.CasterType {
	if t, ok := classCasterTypes[classKey]; ok {
		return t
	}
	return dnd5e.CasterTypeNone
}

// MaxSpellLevel is the highest spell level a caster of the given type can
// cast at a character level. Levels outside 1-20 are clamped.
func MaxSpellLevel(casterType dnd5e.CasterType, level int) int {
	level = clampLevel(level)

	switch casterType {
	case dnd5e.CasterTypeFull:
		return min(halfRoundedUp(level), maxFullCasterSpellLevel)
	case dnd5e.CasterTypeHalf:
		return halfCasterSpellLevel(level)
	case dnd5e.CasterTypeWarlock:
		return min(halfRoundedUp(level), maxPactSpellLevel)
	default:
		return 0
	}
}

// halfCasterSpellLevel follows the paladin/ranger table: nothing at 1,
// then a new spell level every four levels starting at 2
func halfCasterSpellLevel(level int) int {
	switch {
	case level < 2:
		return 0
	case level <= 4:
		return 1
	case level <= 8:
		return 2
	case level <= 12:
		return 3
	case level <= 16:
		return 4
	default:
		return 5
	}
}

// VisibleSpells keeps cantrips and the spells castable at level
func VisibleSpells(spells []*dnd5e.Spell, casterType dnd5e.CasterType, level int) []*dnd5e.Spell {
	maxLevel := MaxSpellLevel(casterType, level)

	visible := make([]*dnd5e.Spell, 0, len(spells))
	for _, spell := range spells {
		if spell == nil {
			continue
		}
		if spell.Level == 0 || spell.Level <= maxLevel {
			visible = append(visible, spell)
		}
	}
	return visible
}

// VisibleFeatures keeps features unlocked at or below level
func VisibleFeatures(features []*dnd5e.Feature, level int) []*dnd5e.Feature {
	visible := make([]*dnd5e.Feature, 0, len(features))
	for _, feature := range features {
		if feature != nil && feature.Level <= level {
			visible = append(visible, feature)
		}
	}
	return visible
}

func clampLevel(level int) int {
	return max(MinLevel, min(level, MaxLevel))
}

func halfRoundedUp(level int) int {
	return (level + 1) / 2
}
