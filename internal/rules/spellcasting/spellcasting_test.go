package spellcasting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/rules/spellcasting"
)

func TestMaxSpellLevel(t *testing.T) {
	testCases := []struct {
		name       string
		casterType dnd5e.CasterType
		level      int
		expected   int
	}{
		{"full at 1", dnd5e.CasterTypeFull, 1, 1},
		{"full at 3", dnd5e.CasterTypeFull, 3, 2},
		{"full at 17", dnd5e.CasterTypeFull, 17, 9},
		{"full capped at 20", dnd5e.CasterTypeFull, 20, 9},
		{"half at 1", dnd5e.CasterTypeHalf, 1, 0},
		{"half at 2", dnd5e.CasterTypeHalf, 2, 1},
		{"half at 4", dnd5e.CasterTypeHalf, 4, 1},
		{"half at 5", dnd5e.CasterTypeHalf, 5, 2},
		{"half at 9", dnd5e.CasterTypeHalf, 9, 3},
		{"half at 13", dnd5e.CasterTypeHalf, 13, 4},
		{"half at 17", dnd5e.CasterTypeHalf, 17, 5},
		{"warlock at 1", dnd5e.CasterTypeWarlock, 1, 1},
		{"warlock at 9", dnd5e.CasterTypeWarlock, 9, 5},
		{"warlock capped", dnd5e.CasterTypeWarlock, 20, 5},
		{"none", dnd5e.CasterTypeNone, 20, 0},
		{"level below range clamps", dnd5e.CasterTypeFull, -3, 1},
		{"level above range clamps", dnd5e.CasterTypeHalf, 40, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, spellcasting.MaxSpellLevel(tc.casterType, tc.level))
		})
	}
}

func TestCasterTypeForClass(t *testing.T) {
	assert.Equal(t, dnd5e.CasterTypeFull, spellcasting.CasterTypeForClass("wizard"))
	assert.Equal(t, dnd5e.CasterTypeHalf, spellcasting.CasterTypeForClass("ranger"))
	assert.Equal(t, dnd5e.CasterTypeWarlock, spellcasting.CasterTypeForClass("warlock"))
	assert.Equal(t, dnd5e.CasterTypeNone, spellcasting.CasterTypeForClass("fighter"))
}

func TestVisibleSpells(t *testing.T) {
	spells := []*dnd5e.Spell{
		{Name: "Fire Bolt", Level: 0},
		{Name: "Magic Missile", Level: 1},
		{Name: "Misty Step", Level: 2},
		{Name: "Fireball", Level: 3},
	}

	names := func(in []*dnd5e.Spell) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			out = append(out, s.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Fire Bolt", "Magic Missile"},
		names(spellcasting.VisibleSpells(spells, dnd5e.CasterTypeFull, 1)))
	assert.Equal(t, []string{"Fire Bolt", "Magic Missile", "Misty Step", "Fireball"},
		names(spellcasting.VisibleSpells(spells, dnd5e.CasterTypeFull, 5)))
	assert.Equal(t, []string{"Fire Bolt"},
		names(spellcasting.VisibleSpells(spells, dnd5e.CasterTypeHalf, 1)))
	assert.Equal(t, []string{"Fire Bolt"},
		names(spellcasting.VisibleSpells(spells, dnd5e.CasterTypeNone, 20)))
}

func TestVisibleFeatures(t *testing.T) {
	features := []*dnd5e.Feature{
		{Name: "Second Wind", Level: 1},
		{Name: "Action Surge", Level: 2},
		{Name: "Extra Attack", Level: 5},
	}

	visible := spellcasting.VisibleFeatures(features, 2)
	assert.Len(t, visible, 2)
	assert.Equal(t, "Action Surge", visible[1].Name)
}
