package v1alpha1

import (
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/abilities"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/classes"
)

func convertSessionOutput(out *abilities.SessionOutput) *AbilitySessionResponse {
	resp := &AbilitySessionResponse{
		Accepted:        out.Accepted,
		Reason:          string(out.Reason),
		PointsRemaining: out.PointsRemaining,
		IsStandardArray: out.IsStandardArray,
		Group:           out.Group,
		Resumed:         out.Resumed,
	}

	if s := out.Session; s != nil {
		resp.Session = &AbilitySession{
			ID:         s.ID,
			PlayerID:   s.PlayerID,
			Method:     string(s.Build.Method),
			Scores:     s.Build.Scores,
			RollGroups: s.Build.RollGroups,
			ExpiresAt:  s.ExpiresAt,
		}
	}

	return resp
}

func convertClass(c *classes.Class) *Class {
	if c == nil {
		return nil
	}
	return &Class{
		Key:        c.Key,
		Name:       c.Name,
		HitDie:     c.HitDie,
		CasterType: string(c.CasterType),
	}
}

func convertCharacter(c *dnd5e.Character) *Character {
	if c == nil {
		return nil
	}
	return &Character{
		ID:           c.ID,
		PlayerID:     c.PlayerID,
		Name:         c.Name,
		Race:         c.Race,
		ClassKey:     c.ClassKey,
		Level:        c.Level,
		Scores:       c.Scores,
		HitPoints:    c.HitPoints,
		MaxHitPoints: c.MaxHitPoints,
		ArmorClass:   c.ArmorClass,
		Background:   c.Background,
		Appearance:   c.Appearance,
		Currency:     c.Currency,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func convertCharacters(chars []*dnd5e.Character) []*Character {
	out := make([]*Character, 0, len(chars))
	for _, c := range chars {
		out = append(out, convertCharacter(c))
	}
	return out
}

func convertInventoryLine(l *dnd5e.InventoryLine) *InventoryLine {
	if l == nil {
		return nil
	}
	return &InventoryLine{
		ID:         l.ID,
		ItemID:     l.ItemID,
		ItemName:   l.ItemName,
		Quantity:   l.Quantity,
		IsEquipped: l.IsEquipped,
	}
}

func convertInventory(lines []*dnd5e.InventoryLine) []*InventoryLine {
	out := make([]*InventoryLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, convertInventoryLine(l))
	}
	return out
}

func convertSpells(spells []*dnd5e.Spell) []*Spell {
	out := make([]*Spell, 0, len(spells))
	for _, s := range spells {
		out = append(out, &Spell{Name: s.Name, Level: s.Level, School: s.School})
	}
	return out
}

func convertFeatures(features []*dnd5e.Feature) []*Feature {
	out := make([]*Feature, 0, len(features))
	for _, f := range features {
		out = append(out, &Feature{Name: f.Name, Level: f.Level, Description: f.Description})
	}
	return out
}

func convertMember(m *dnd5e.CampaignMember) *CampaignMember {
	if m == nil {
		return nil
	}
	return &CampaignMember{
		PlayerID:    m.PlayerID,
		CharacterID: m.CharacterID,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
	}
}

func convertCampaign(c *dnd5e.Campaign) *Campaign {
	if c == nil {
		return nil
	}

	out := &Campaign{
		ID:         c.ID,
		Name:       c.Name,
		DMPlayerID: c.DMPlayerID,
		JoinCode:   c.JoinCode,
		CreatedAt:  c.CreatedAt,
		Members:    make([]*CampaignMember, 0, len(c.Members)),
	}
	for _, m := range c.Members {
		out.Members = append(out.Members, convertMember(m))
	}

	return out
}

func convertCatalogItems(items []*dnd5e.CatalogItem) []*CatalogItem {
	out := make([]*CatalogItem, 0, len(items))
	for _, i := range items {
		out = append(out, &CatalogItem{
			ID:          i.ID,
			Name:        i.Name,
			Category:    i.Category,
			CostGP:      i.CostGP,
			Weight:      i.Weight,
			Description: i.Description,
		})
	}
	return out
}

func convertCampaigns(campaigns []*dnd5e.Campaign) []*Campaign {
	out := make([]*Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, convertCampaign(c))
	}
	return out
}
