// Package character implements the character build pipeline and character
// management on top of the rules packages and repositories
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-builder/internal/orchestrators/character Service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/telemetry"
	abilitysession "github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/classes"
	"github.com/KirkDiggler/rpg-builder/internal/rules/catalog"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
	"github.com/KirkDiggler/rpg-builder/internal/rules/spellcasting"
)

var tracer = telemetry.Tracer("orchestrators/character")

// Service defines character operations
type Service interface {
	ListEquipmentOptions(ctx context.Context, input *ListEquipmentOptionsInput) (*ListEquipmentOptionsOutput, error)
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Inventory
	AddInventoryItem(ctx context.Context, input *AddInventoryItemInput) (*AddInventoryItemOutput, error)
	SetEquipped(ctx context.Context, input *SetEquippedInput) (*SetEquippedOutput, error)
	RemoveInventoryItem(ctx context.Context, input *RemoveInventoryItemInput) (*RemoveInventoryItemOutput, error)

	ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error)
	ListFeatures(ctx context.Context, input *ListFeaturesInput) (*ListFeaturesOutput, error)
}

// ItemMatcher resolves item names against the catalog, one result per name
// in input order
type ItemMatcher interface {
	Match(ctx context.Context, names []string) ([]catalog.MatchResult, error)
	MatchOne(ctx context.Context, name string) (catalog.MatchResult, error)
}

var _ ItemMatcher = (*catalog.Matcher)(nil)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo  characters.Repository
	ClassRepo      classes.Repository
	SessionRepo    abilitysession.Repository
	Resolver       *equipment.Resolver
	Matcher        ItemMatcher
	IDGenerator    idgen.Generator
	InventoryIDGen idgen.Generator
	Clock          clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.ClassRepo == nil {
		vb.RequiredField("ClassRepo")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Matcher == nil {
		vb.RequiredField("Matcher")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.InventoryIDGen == nil {
		vb.RequiredField("InventoryIDGen")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo  characters.Repository
	classRepo      classes.Repository
	sessionRepo    abilitysession.Repository
	resolver       *equipment.Resolver
	matcher        ItemMatcher
	idGen          idgen.Generator
	inventoryIDGen idgen.Generator
	clock          clock.Clock
}

// NewOrchestrator creates a new character orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = equipment.NewResolver(nil)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &orchestrator{
		characterRepo:  cfg.CharacterRepo,
		classRepo:      cfg.ClassRepo,
		sessionRepo:    cfg.SessionRepo,
		resolver:       resolver,
		matcher:        cfg.Matcher,
		idGen:          cfg.IDGenerator,
		inventoryIDGen: cfg.InventoryIDGen,
		clock:          clk,
	}, nil
}

// ListEquipmentOptions returns the class's mandatory items and the options
// of every choice group
func (o *orchestrator) ListEquipmentOptions(ctx context.Context, input *ListEquipmentOptionsInput) (*ListEquipmentOptionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	class, err := o.getClass(ctx, input.ClassKey)
	if err != nil {
		return nil, err
	}

	output := &ListEquipmentOptionsOutput{
		Class:     class,
		Mandatory: class.Grant.Mandatory,
	}
	for idx, group := range class.Grant.Choices {
		output.Groups = append(output.Groups, EquipmentGroup{
			Index:       idx,
			Description: group.Description,
			Choose:      group.Choose,
			Options:     equipment.EnumerateOptions(group),
		})
	}

	return output, nil
}

// CreateCharacter runs the build pipeline: scores, equipment resolution,
// catalog matching, then persistence. Only the character insert is fatal;
// inventory problems are reported in the output.
func (o *orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	ctx, span := tracer.Start(ctx, "character.CreateCharacter")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateRequired("class_key", input.ClassKey, vb)
	if input.AbilitySessionID == "" && input.Scores == nil {
		vb.Field("scores", "an ability session or explicit scores are required")
	}
	if input.Scores != nil {
		validateScores(*input.Scores, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	scores, err := o.resolveScores(ctx, input)
	if err != nil {
		return nil, err
	}

	class, err := o.getClass(ctx, input.ClassKey)
	if err != nil {
		return nil, err
	}

	method := input.EquipmentMethod
	if method == "" {
		method = equipment.MethodClass
	}
	resolution, err := o.resolver.Resolve(&equipment.Input{
		Method:  method,
		Grant:   class.Grant,
		Choices: input.Choices,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve starting equipment")
	}
	for _, w := range resolution.Warnings {
		slog.Warn("Equipment resolution warning",
			"class", class.Key,
			"kind", w.Kind,
			"group_index", w.GroupIndex,
			"message", w.Message)
	}

	matched := make(map[string]catalog.MatchResult, len(resolution.Requests))
	results, err := o.matcher.Match(ctx, resolution.ItemNames())
	if err != nil {
		// an unreachable catalog leaves the character without items
		slog.Warn("Catalog lookup failed, storing character without equipment",
			"class", class.Key,
			"requests", len(resolution.Requests),
			"error", err)
	}
	for _, result := range results {
		matched[result.Name] = result
	}

	now := o.clock.Now()
	char := &dnd5e.Character{
		ID:           o.idGen.Generate(),
		PlayerID:     input.PlayerID,
		Name:         input.Name,
		Race:         input.Race,
		ClassKey:     class.Key,
		Level:        dnd5e.StartingLevel,
		Scores:       scores,
		HitPoints:    dnd5e.StartingHitPoints,
		MaxHitPoints: dnd5e.StartingHitPoints,
		ArmorClass:   dnd5e.StartingArmorClass,
		Currency:     resolution.Gold,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := o.characterRepo.Create(ctx, characters.CreateInput{Character: char}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(err, "failed to create character")
	}
	span.SetAttributes(attribute.String("character.id", char.ID))

	output := &CreateCharacterOutput{
		Character: char,
		Warnings:  resolution.Warnings,
	}

	for _, request := range resolution.Requests {
		match := matched[request.ItemName]
		if !match.Found {
			slog.Warn("Item not found in catalog", "item", request.ItemName, "character_id", char.ID)
			output.Unmatched = append(output.Unmatched, request.ItemName)
			continue
		}

		line := &dnd5e.InventoryLine{
			ID:          o.inventoryIDGen.Generate(),
			CharacterID: char.ID,
			ItemID:      match.Item.ID,
			ItemName:    match.Item.Name,
			Quantity:    request.Quantity,
		}
		if _, err := o.characterRepo.AddInventory(ctx, characters.AddInventoryInput{Line: line}); err != nil {
			slog.Error("Failed to add inventory item",
				"item", request.ItemName,
				"item_id", match.Item.ID,
				"character_id", char.ID,
				"error", err)
			output.FailedInserts = append(output.FailedInserts, request.ItemName)
			continue
		}
		output.Inventory = append(output.Inventory, line)
	}

	if input.AbilitySessionID != "" {
		if _, err := o.sessionRepo.Delete(ctx, abilitysession.DeleteInput{ID: input.AbilitySessionID}); err != nil {
			slog.Warn("Failed to clean up ability session", "session_id", input.AbilitySessionID, "error", err)
		}
	}

	slog.Info("Created character",
		"entity_type", char.GetType(),
		"entity_id", char.GetID(),
		"player_id", char.PlayerID,
		"class", char.ClassKey,
		"inventory", len(output.Inventory),
		"unmatched", len(output.Unmatched),
		"warnings", len(output.Warnings))

	return output, nil
}

// GetCharacter returns a character with its inventory
func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	inv, err := o.characterRepo.ListInventory(ctx, characters.ListInventoryInput{CharacterID: char.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	return &GetCharacterOutput{Character: char, Inventory: inv.Lines}, nil
}

// ListCharacters returns a player's characters
func (o *orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.characterRepo.ListByPlayer(ctx, characters.ListByPlayerInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	return &ListCharactersOutput{Characters: out.Characters}, nil
}

// UpdateCharacter applies the provided edits
func (o *orchestrator) UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Name != nil && *input.Name == "" {
		vb.Field("name", "cannot be empty")
	}
	if input.Scores != nil {
		validateScores(*input.Scores, vb)
	}
	if input.HitPoints != nil && *input.HitPoints < 0 {
		vb.Field("hit_points", "cannot be negative")
	}
	if input.MaxHitPoints != nil && *input.MaxHitPoints < 0 {
		vb.Field("max_hit_points", "cannot be negative")
	}
	if input.Level != nil {
		errors.ValidateRange("level", *input.Level, dnd5e.MinLevel, dnd5e.MaxLevel, vb)
	}
	if input.ArmorClass != nil {
		errors.ValidateRange("armor_class", *input.ArmorClass, 1, dnd5e.MaxArmorClass, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.getOwnedCharacter(ctx, input.CharacterID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		char.Name = *input.Name
	}
	if input.Scores != nil {
		char.Scores = *input.Scores
	}
	if input.HitPoints != nil {
		char.HitPoints = *input.HitPoints
	}
	if input.MaxHitPoints != nil {
		char.MaxHitPoints = *input.MaxHitPoints
	}
	if input.Level != nil {
		char.Level = *input.Level
	}
	if input.ArmorClass != nil {
		char.ArmorClass = *input.ArmorClass
	}
	if input.Background != nil {
		char.Background = *input.Background
	}
	if input.Appearance != nil {
		char.Appearance = *input.Appearance
	}
	char.UpdatedAt = o.clock.Now()

	out, err := o.characterRepo.Update(ctx, characters.UpdateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}

	return &UpdateCharacterOutput{Character: out.Character}, nil
}

// DeleteCharacter removes the inventory, then the character. An inventory
// failure is logged and the character delete is still attempted.
func (o *orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.getOwnedCharacter(ctx, input.CharacterID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	output := &DeleteCharacterOutput{}
	inv, err := o.characterRepo.DeleteInventory(ctx, characters.DeleteInventoryInput{CharacterID: char.ID})
	if err != nil {
		slog.Error("Failed to delete inventory", "character_id", char.ID, "error", err)
	} else {
		output.InventoryDeleted = inv.LinesDeleted
	}

	if _, err := o.characterRepo.Delete(ctx, characters.DeleteInput{ID: char.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete character")
	}

	slog.Info("Deleted character", "character_id", char.ID, "inventory_deleted", output.InventoryDeleted)
	return output, nil
}

// AddInventoryItem puts a catalog item, found by name, into the
// character's inventory
func (o *orchestrator) AddInventoryItem(ctx context.Context, input *AddInventoryItemInput) (*AddInventoryItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemName == "" {
		return nil, errors.InvalidArgument("item name is required")
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, errors.InvalidArgument("quantity cannot be negative")
	}

	char, err := o.getOwnedCharacter(ctx, input.CharacterID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	match, err := o.matcher.MatchOne(ctx, input.ItemName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search catalog")
	}
	if !match.Found {
		return nil, errors.NotFoundf("no catalog item matches %q", input.ItemName)
	}

	line := &dnd5e.InventoryLine{
		ID:          o.inventoryIDGen.Generate(),
		CharacterID: char.ID,
		ItemID:      match.Item.ID,
		ItemName:    match.Item.Name,
		Quantity:    quantity,
	}
	if _, err := o.characterRepo.AddInventory(ctx, characters.AddInventoryInput{Line: line}); err != nil {
		return nil, errors.Wrap(err, "failed to add inventory item")
	}

	slog.Info("Added inventory item", "character_id", char.ID, "item", line.ItemName, "quantity", quantity)
	return &AddInventoryItemOutput{Line: line, Exact: match.Exact}, nil
}

// SetEquipped equips or unequips one inventory line
func (o *orchestrator) SetEquipped(ctx context.Context, input *SetEquippedInput) (*SetEquippedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.LineID == "" {
		return nil, errors.InvalidArgument("inventory line ID is required")
	}

	char, err := o.getOwnedCharacter(ctx, input.CharacterID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	out, err := o.characterRepo.SetEquipped(ctx, characters.SetEquippedInput{
		CharacterID: char.ID,
		LineID:      input.LineID,
		Equipped:    input.Equipped,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update inventory line")
	}

	return &SetEquippedOutput{Line: out.Line}, nil
}

// RemoveInventoryItem deletes one inventory line
func (o *orchestrator) RemoveInventoryItem(ctx context.Context, input *RemoveInventoryItemInput) (*RemoveInventoryItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.LineID == "" {
		return nil, errors.InvalidArgument("inventory line ID is required")
	}

	char, err := o.getOwnedCharacter(ctx, input.CharacterID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if _, err := o.characterRepo.RemoveInventory(ctx, characters.RemoveInventoryInput{
		CharacterID: char.ID,
		LineID:      input.LineID,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to remove inventory line")
	}

	slog.Info("Removed inventory item", "character_id", char.ID, "line_id", input.LineID)
	return &RemoveInventoryItemOutput{}, nil
}

// ListSpells returns the class spells the character can currently cast
func (o *orchestrator) ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	casterType := spellcasting.CasterTypeForClass(char.ClassKey)
	output := &ListSpellsOutput{
		CasterType:    casterType,
		MaxSpellLevel: spellcasting.MaxSpellLevel(casterType, char.Level),
	}
	if casterType == dnd5e.CasterTypeNone {
		return output, nil
	}

	spells, err := o.classRepo.ListSpells(ctx, classes.ListSpellsInput{ClassKey: char.ClassKey})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list class spells")
	}
	output.Spells = spellcasting.VisibleSpells(spells.Spells, casterType, char.Level)

	return output, nil
}

// ListFeatures returns the class features unlocked at the character's level
func (o *orchestrator) ListFeatures(ctx context.Context, input *ListFeaturesInput) (*ListFeaturesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	features, err := o.classRepo.ListFeatures(ctx, classes.ListFeaturesInput{ClassKey: char.ClassKey})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list class features")
	}

	return &ListFeaturesOutput{
		Features: spellcasting.VisibleFeatures(features.Features, char.Level),
	}, nil
}

func (o *orchestrator) resolveScores(ctx context.Context, input *CreateCharacterInput) (dnd5e.AbilityScores, error) {
	if input.AbilitySessionID == "" {
		return *input.Scores, nil
	}

	out, err := o.sessionRepo.Get(ctx, abilitysession.GetInput{ID: input.AbilitySessionID})
	if err != nil {
		return dnd5e.AbilityScores{}, errors.Wrap(err, "failed to load ability session")
	}
	if out.Session.PlayerID != input.PlayerID {
		return dnd5e.AbilityScores{}, errors.PermissionDenied("ability session belongs to another player")
	}

	return out.Session.Build.Scores, nil
}

func (o *orchestrator) getClass(ctx context.Context, classKey string) (*classes.Class, error) {
	if classKey == "" {
		return nil, errors.InvalidArgument("class key is required")
	}

	out, err := o.classRepo.Get(ctx, classes.GetInput{Key: classKey})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get class %s", classKey)
	}
	return out.Class, nil
}

func (o *orchestrator) getCharacter(ctx context.Context, characterID string) (*dnd5e.Character, error) {
	if characterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characters.GetInput{ID: characterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", characterID)
	}
	return out.Character, nil
}

func (o *orchestrator) getOwnedCharacter(ctx context.Context, characterID, playerID string) (*dnd5e.Character, error) {
	if playerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	char, err := o.getCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if char.PlayerID != playerID {
		return nil, errors.PermissionDeniedf("character %s belongs to another player", characterID)
	}
	return char, nil
}

func validateScores(scores dnd5e.AbilityScores, vb *errors.ValidationBuilder) {
	for _, ability := range dnd5e.AllAbilities {
		errors.ValidateRange(string(ability), scores.Get(ability), dnd5e.MinEditableScore, dnd5e.MaxEditableScore, vb)
	}
}
