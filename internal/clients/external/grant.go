package external

import (
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

// convertGrant maps API starting equipment onto the grant model used by the
// equipment resolver
func convertGrant(class *entities.Class) *equipment.Grant {
	grant := &equipment.Grant{}

	for _, entry := range class.StartingEquipment {
		if entry == nil || entry.Equipment == nil {
			continue
		}
		grant.Mandatory = append(grant.Mandatory, equipment.MandatoryEntry{
			ItemName: entry.Equipment.Name,
			Quantity: entry.Quantity,
		})
	}

	for _, choice := range class.StartingEquipmentOptions {
		if choice == nil {
			continue
		}
		group := equipment.ChoiceGroup{
			Choose:      choice.ChoiceCount,
			Description: choice.Description,
			Options:     equipment.OptionSet{Kind: equipment.OptionSetUnknown},
		}
		if choice.OptionList != nil {
			items := make([]equipment.OptionItem, 0, len(choice.OptionList.Options))
			for _, option := range choice.OptionList.Options {
				items = append(items, convertOption(option))
			}
			group.Options = equipment.OptionSet{Kind: equipment.OptionSetFlat, Items: items}
		}
		grant.Choices = append(grant.Choices, group)
	}

	return grant
}

func convertOption(option entities.Option) equipment.OptionItem {
	switch opt := option.(type) {
	case *entities.CountedReferenceOption:
		if opt.Reference != nil {
			return equipment.OptionItem{
				Shape: equipment.ShapeCountedReference,
				Name:  opt.Reference.Name,
				Count: opt.Count,
			}
		}

	case *entities.ReferenceOption:
		if opt.Reference != nil {
			return equipment.OptionItem{
				Shape: equipment.ShapeCountedReference,
				Name:  opt.Reference.Name,
				Count: 1,
			}
		}

	case *entities.ChoiceOption:
		return equipment.OptionItem{
			Shape: equipment.ShapeChoice,
			Name:  opt.Description,
		}

	case *entities.MultipleOption:
		items := make([]equipment.OptionItem, 0, len(opt.Items))
		for _, item := range opt.Items {
			items = append(items, convertOption(item))
		}
		return equipment.OptionItem{Shape: equipment.ShapeBundle, Items: items}
	}

	return equipment.OptionItem{Shape: equipment.ShapeUnknown}
}
