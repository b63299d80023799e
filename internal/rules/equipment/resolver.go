package equipment

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

// Method is how a character acquires starting equipment
type Method string

// Acquisition methods
const (
	MethodClass Method = "class"
	MethodGold  Method = "gold"
)

// StartingGold is the flat purse granted by MethodGold
const StartingGold = 100

// WarningKind classifies a non-fatal resolution problem
type WarningKind string

// Warning kinds
const (
	WarningUnparseableOptionSet   WarningKind = "unparseable_option_set"
	WarningUnsupportedMultiChoice WarningKind = "unsupported_multi_choice"
	WarningMissingChoice          WarningKind = "missing_choice"
	WarningUnknownChoice          WarningKind = "unknown_choice"
	WarningUnnamedEntry           WarningKind = "unnamed_mandatory_entry"
)

// Warning is surfaced to the player; resolution continues past it.
// GroupIndex is -1 for mandatory entries.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	GroupIndex int         `json:"group_index"`
	Message    string      `json:"message"`
}

// Input is one resolution request. Choices maps choice group index to the
// chosen option label.
type Input struct {
	Method  Method
	Grant   *Grant
	Choices map[int]string
}

// Resolution is the flattened, pack-expanded outcome
type Resolution struct {
	Requests []ItemRequest
	Gold     dnd5e.Currency
	Warnings []Warning
}

// ResolverConfig configures a Resolver
type ResolverConfig struct {
	// Packs defaults to the embedded table
	Packs *PackTable
}

// Resolver is stateless apart from its pack table and safe for concurrent use
type Resolver struct {
	packs *PackTable
}

// NewResolver creates a resolver
func NewResolver(cfg *ResolverConfig) *Resolver {
	packs := DefaultPacks()
	if cfg != nil && cfg.Packs != nil {
		packs = cfg.Packs
	}
	return &Resolver{packs: packs}
}

// Resolve expands a grant and the player's choices into item requests.
// Output order is mandatory entries, then choice groups by index, with each
// pack replaced in place by its contents.
func (r *Resolver) Resolve(input *Input) (*Resolution, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	switch input.Method {
	case MethodGold:
		return &Resolution{Gold: dnd5e.Currency{GP: StartingGold}}, nil
	case MethodClass:
	default:
		return nil, errors.InvalidArgumentf("unknown equipment method %q", input.Method)
	}

	if input.Grant == nil {
		return nil, errors.InvalidArgument("grant is required for class equipment")
	}

	resolution := &Resolution{}
	var chosen []ItemRequest

	for _, entry := range input.Grant.Mandatory {
		if entry.ItemName == "" {
			resolution.Warnings = append(resolution.Warnings, Warning{
				Kind:       WarningUnnamedEntry,
				GroupIndex: -1,
				Message:    "mandatory entry has no item name",
			})
			continue
		}
		quantity := entry.Quantity
		if quantity < 1 {
			quantity = 1
		}
		chosen = append(chosen, ItemRequest{ItemName: entry.ItemName, Quantity: quantity})
	}

	for idx, group := range input.Grant.Choices {
		requests, warning := resolveGroup(idx, group, input.Choices)
		if warning != nil {
			resolution.Warnings = append(resolution.Warnings, *warning)
			continue
		}
		chosen = append(chosen, requests...)
	}

	for _, request := range chosen {
		contents, isPack := r.packs.Contents(request.ItemName)
		if !isPack {
			resolution.Requests = append(resolution.Requests, request)
			continue
		}
		for _, item := range contents {
			item.Quantity *= request.Quantity
			resolution.Requests = append(resolution.Requests, item)
		}
	}

	return resolution, nil
}

func resolveGroup(idx int, group ChoiceGroup, choices map[int]string) ([]ItemRequest, *Warning) {
	options := EnumerateOptions(group)
	if len(options) == 0 {
		return nil, &Warning{
			Kind:       WarningUnparseableOptionSet,
			GroupIndex: idx,
			Message:    fmt.Sprintf("could not read options for %q", group.Description),
		}
	}

	if group.Choose != 1 {
		return nil, &Warning{
			Kind:       WarningUnsupportedMultiChoice,
			GroupIndex: idx,
			Message:    fmt.Sprintf("choose %d: %s is not resolved automatically", group.Choose, group.Description),
		}
	}

	choice, ok := choices[idx]
	if !ok || choice == "" {
		return nil, &Warning{
			Kind:       WarningMissingChoice,
			GroupIndex: idx,
			Message:    fmt.Sprintf("no option chosen for %q", group.Description),
		}
	}

	option, found := findOption(options, choice)
	if !found {
		return nil, &Warning{
			Kind:       WarningUnknownChoice,
			GroupIndex: idx,
			Message:    fmt.Sprintf("%q is not an option for %q", choice, group.Description),
		}
	}

	return append([]ItemRequest(nil), option.Requests...), nil
}

// ItemNames returns the distinct requested names in sorted order
func (res *Resolution) ItemNames() []string {
	seen := make(map[string]struct{}, len(res.Requests))
	names := make([]string, 0, len(res.Requests))
	for _, request := range res.Requests {
		if _, dup := seen[request.ItemName]; dup {
			continue
		}
		seen[request.ItemName] = struct{}{}
		names = append(names, request.ItemName)
	}
	sort.Strings(names)
	return names
}
