// Package equipment turns a class starting-equipment grant plus the player's
// choices into a flat list of item requests, expanding adventuring packs.
package equipment

// OptionSetKind tags the shape a choice group's options arrived in
type OptionSetKind string

// Option set kinds
const (
	// OptionSetFlat is a bare array of options
	OptionSetFlat OptionSetKind = "flat"
	// OptionSetNested is an {options: [...]} object
	OptionSetNested OptionSetKind = "nested"
	// OptionSetCategory means "any item from an equipment category"
	OptionSetCategory OptionSetKind = "category"
	// OptionSetUnknown is anything else; it yields no options
	OptionSetUnknown OptionSetKind = "unknown"
)

// OptionShape tags a single option's encoding
type OptionShape string

// Option shapes seen in class data
const (
	ShapeManual           OptionShape = "manual_name"
	ShapeCountedReference OptionShape = "counted_reference"
	ShapeChoice           OptionShape = "choice"
	ShapeEquipment        OptionShape = "equipment"
	ShapeEquipmentOption  OptionShape = "equipment_option"
	ShapeItem             OptionShape = "item"
	ShapeName             OptionShape = "name"
	ShapeBundle           OptionShape = "multiple"
	ShapeUnknown          OptionShape = "unknown"
)

// MandatoryEntry is an item every member of the class receives
type MandatoryEntry struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// OptionItem is one selectable option inside a choice group
type OptionItem struct {
	Shape OptionShape `json:"shape"`
	// Name is the referenced item name, or the description for ShapeChoice
	Name     string `json:"name,omitempty"`
	Count    int    `json:"count,omitempty"`
	Quantity int    `json:"quantity,omitempty"`

	// Set for ShapeEquipmentOption
	Choose        int    `json:"choose,omitempty"`
	EquipmentType string `json:"equipment_type,omitempty"`

	// Set for ShapeBundle
	Items []OptionItem `json:"items,omitempty"`
}

// OptionSet is the tagged union of option encodings
type OptionSet struct {
	Kind     OptionSetKind `json:"kind"`
	Items    []OptionItem  `json:"items,omitempty"`
	Category string        `json:"category,omitempty"`
}

// ChoiceGroup asks the player to pick Choose options from Options
type ChoiceGroup struct {
	Choose      int       `json:"choose"`
	Description string    `json:"description"`
	Options     OptionSet `json:"options"`
}

// Grant is a class's starting equipment
type Grant struct {
	Mandatory []MandatoryEntry `json:"mandatory"`
	Choices   []ChoiceGroup    `json:"choices"`
}

// ItemRequest is one resolved, unpacked item to look up in the catalog.
// Quantities are aggregated: ten torches are one request with Quantity 10.
type ItemRequest struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}
