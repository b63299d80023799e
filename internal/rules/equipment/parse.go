package equipment

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

// Loose wire shapes as stored in the classes table
type (
	rawNamed struct {
		Name string `json:"name"`
	}

	rawMandatory struct {
		Equipment *rawNamed `json:"equipment"`
		Name      string    `json:"name"`
		Quantity  int       `json:"quantity"`
	}

	rawChoice struct {
		Choose int             `json:"choose"`
		Desc   string          `json:"desc"`
		From   json.RawMessage `json:"from"`
	}

	rawGrant struct {
		Mandatory []rawMandatory `json:"mandatory"`
		Options   []rawChoice    `json:"options"`
	}

	rawOptionItem struct {
		ManualName string    `json:"manual_name"`
		OptionType string    `json:"option_type"`
		Of         *rawNamed `json:"of"`
		Choice     *struct {
			Desc string `json:"desc"`
		} `json:"choice"`
		Equipment       *rawNamed `json:"equipment"`
		EquipmentOption *struct {
			Choose int    `json:"choose"`
			Type   string `json:"type"`
		} `json:"equipment_option"`
		Item     *rawNamed         `json:"item"`
		Items    []json.RawMessage `json:"items"`
		Name     string            `json:"name"`
		Count    int               `json:"count"`
		Quantity int               `json:"quantity"`
	}

	rawNestedFrom struct {
		Options []json.RawMessage `json:"options"`
	}

	rawCategoryFrom struct {
		EquipmentCategory *rawNamed `json:"equipment_category"`
	}
)

// ParseGrant decodes the loose starting_equipment document. Only malformed
// JSON is an error; unrecognised option sets become OptionSetUnknown so the
// resolver can report them per group.
func ParseGrant(data []byte) (*Grant, error) {
	grant := &Grant{}
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return grant, nil
	}

	var raw rawGrant
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.InvalidArgumentf("malformed starting equipment: %v", err)
	}

	for _, m := range raw.Mandatory {
		name := m.Name
		if m.Equipment != nil {
			name = m.Equipment.Name
		}
		grant.Mandatory = append(grant.Mandatory, MandatoryEntry{
			ItemName: name,
			Quantity: m.Quantity,
		})
	}

	for _, c := range raw.Options {
		grant.Choices = append(grant.Choices, ChoiceGroup{
			Choose:      c.Choose,
			Description: c.Desc,
			Options:     parseOptionSet(c.From),
		})
	}

	return grant, nil
}

func parseOptionSet(from json.RawMessage) OptionSet {
	trimmed := bytes.TrimSpace(from)
	if len(trimmed) == 0 {
		return OptionSet{Kind: OptionSetUnknown}
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return OptionSet{Kind: OptionSetUnknown}
		}
		return OptionSet{Kind: OptionSetFlat, Items: parseOptionItems(items)}

	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return OptionSet{Kind: OptionSetUnknown}
		}

		if _, ok := probe["options"]; ok {
			var nested rawNestedFrom
			if err := json.Unmarshal(trimmed, &nested); err == nil && nested.Options != nil {
				return OptionSet{Kind: OptionSetNested, Items: parseOptionItems(nested.Options)}
			}
		}

		if _, ok := probe["equipment_category"]; ok {
			var category rawCategoryFrom
			if err := json.Unmarshal(trimmed, &category); err == nil &&
				category.EquipmentCategory != nil && category.EquipmentCategory.Name != "" {
				return OptionSet{Kind: OptionSetCategory, Category: category.EquipmentCategory.Name}
			}
		}
	}

	return OptionSet{Kind: OptionSetUnknown}
}

func parseOptionItems(raws []json.RawMessage) []OptionItem {
	items := make([]OptionItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, parseOptionItem(raw))
	}
	return items
}

// parseOptionItem applies the shape precedence used for labels: the first
// populated field wins.
func parseOptionItem(data json.RawMessage) OptionItem {
	var raw rawOptionItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return OptionItem{Shape: ShapeUnknown}
	}

	item := OptionItem{Count: raw.Count, Quantity: raw.Quantity}

	switch {
	case raw.ManualName != "":
		item.Shape = ShapeManual
		item.Name = raw.ManualName
	case raw.OptionType == "counted_reference" && raw.Of != nil:
		item.Shape = ShapeCountedReference
		item.Name = raw.Of.Name
	case raw.OptionType == "choice" && raw.Choice != nil:
		item.Shape = ShapeChoice
		item.Name = raw.Choice.Desc
	case raw.OptionType == "multiple" && len(raw.Items) > 0:
		item.Shape = ShapeBundle
		item.Items = parseOptionItems(raw.Items)
	case raw.Equipment != nil:
		item.Shape = ShapeEquipment
		item.Name = raw.Equipment.Name
	case raw.EquipmentOption != nil:
		item.Shape = ShapeEquipmentOption
		item.Choose = raw.EquipmentOption.Choose
		item.EquipmentType = raw.EquipmentOption.Type
	case raw.Item != nil:
		item.Shape = ShapeItem
		item.Name = raw.Item.Name
	case raw.Name != "":
		item.Shape = ShapeName
		item.Name = raw.Name
	default:
		item.Shape = ShapeUnknown
	}

	return item
}
