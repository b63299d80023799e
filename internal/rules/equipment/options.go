package equipment

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const unknownItemLabel = "Unknown item"

// Option is one entry a player can pick for a choice group
type Option struct {
	Label    string        `json:"label"`
	Requests []ItemRequest `json:"requests"`
	// Placeholder options describe a class of items ("Any martial weapon")
	// rather than a concrete catalog entry
	Placeholder bool `json:"placeholder,omitempty"`
}

// EnumerateOptions lists the selectable options of a group. Unknown option
// sets yield none.
func EnumerateOptions(group ChoiceGroup) []Option {
	switch group.Options.Kind {
	case OptionSetFlat, OptionSetNested:
		options := make([]Option, 0, len(group.Options.Items))
		for _, item := range group.Options.Items {
			options = append(options, optionFromItem(item))
		}
		return options

	case OptionSetCategory:
		label := "Any " + group.Options.Category
		return []Option{{
			Label:       label,
			Requests:    []ItemRequest{{ItemName: label, Quantity: 1}},
			Placeholder: true,
		}}

	default:
		return nil
	}
}

func optionFromItem(item OptionItem) Option {
	if item.Shape == ShapeBundle {
		labels := make([]string, 0, len(item.Items))
		var requests []ItemRequest
		placeholder := false
		for _, part := range item.Items {
			sub := optionFromItem(part)
			labels = append(labels, sub.Label)
			requests = append(requests, sub.Requests...)
			placeholder = placeholder || sub.Placeholder
		}
		return Option{
			Label:       strings.Join(labels, " and "),
			Requests:    requests,
			Placeholder: placeholder,
		}
	}

	name := baseLabel(item)
	label := name
	if item.Count > 1 {
		label += fmt.Sprintf(" (x%d)", item.Count)
	}
	if item.Quantity > 1 {
		label += fmt.Sprintf(" (x%d)", item.Quantity)
	}

	return Option{
		Label:       label,
		Requests:    []ItemRequest{{ItemName: name, Quantity: itemQuantity(item)}},
		Placeholder: item.Shape == ShapeChoice || item.Shape == ShapeEquipmentOption || item.Shape == ShapeUnknown,
	}
}

func baseLabel(item OptionItem) string {
	switch item.Shape {
	case ShapeChoice:
		return capitalizeFirst(item.Name)
	case ShapeEquipmentOption:
		return fmt.Sprintf("Any %d %s", item.Choose, item.EquipmentType)
	case ShapeManual, ShapeCountedReference, ShapeEquipment, ShapeItem, ShapeName:
		if item.Name != "" {
			return item.Name
		}
	}
	return unknownItemLabel
}

func itemQuantity(item OptionItem) int {
	quantity := 1
	if item.Count > 1 {
		quantity *= item.Count
	}
	if item.Quantity > 1 {
		quantity *= item.Quantity
	}
	return quantity
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// findOption matches a player's choice against option labels, exactly first
// and then ignoring case, falling back to the item name of single-item options
func findOption(options []Option, choice string) (Option, bool) {
	for _, option := range options {
		if option.Label == choice {
			return option, true
		}
	}
	for _, option := range options {
		if strings.EqualFold(option.Label, choice) {
			return option, true
		}
	}
	for _, option := range options {
		if len(option.Requests) == 1 && strings.EqualFold(option.Requests[0].ItemName, choice) {
			return option, true
		}
	}
	return Option{}, false
}
