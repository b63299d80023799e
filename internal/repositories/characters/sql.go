package characters

import (
	"context"
	"database/sql"

	"github.com/KirkDiggler/rpg-builder/internal/database"
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

const (
	characterColumns = `id, player_id, name, race, class_key, level,
		strength, dexterity, constitution, intelligence, wisdom, charisma,
		hit_points, max_hit_points, armor_class, background, appearance,
		gold, silver, copper, created_at, updated_at`

	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
	errLineNil          = "inventory line cannot be nil"
	errLineIDEmpty      = "inventory line ID cannot be empty"
)

// Config holds the configuration for the SQL repository
type Config struct {
	DB *database.DB
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.DB == nil {
		return errors.InvalidArgument("database is required")
	}
	return nil
}

type sqlRepository struct {
	db *database.DB
}

// NewSQLRepository creates a character store backed by SQL
func NewSQLRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &sqlRepository{db: cfg.DB}, nil
}

var _ Repository = (*sqlRepository)(nil)

// Create inserts a new character
func (r *sqlRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	char := input.Character
	if char == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if char.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if char.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO characters (`+characterColumns+`)
		 VALUES (`+database.Placeholders(22, "?")+`)`,
		char.ID, char.PlayerID, char.Name, char.Race, char.ClassKey, char.Level,
		char.Scores.Str, char.Scores.Dex, char.Scores.Con,
		char.Scores.Int, char.Scores.Wis, char.Scores.Cha,
		char.HitPoints, char.MaxHitPoints,
		char.ArmorClass, char.Background, char.Appearance,
		char.Currency.GP, char.Currency.SP, char.Currency.CP,
		database.ToMillis(char.CreatedAt), database.ToMillis(char.UpdatedAt),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.AlreadyExists("character already exists")
		}
		return nil, errors.Wrap(err, "failed to insert character")
	}

	return &CreateOutput{Character: char}, nil
}

// Get retrieves a character by ID
func (r *sqlRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = ?`, input.ID)
	char, err := scanCharacter(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("character %s not found", input.ID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character")
	}

	return &GetOutput{Character: char}, nil
}

// ListByPlayer returns a player's characters, newest first
func (r *sqlRepository) ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE player_id = ? ORDER BY created_at DESC, id`,
		input.PlayerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}
	defer func() { _ = rows.Close() }()

	var chars []*dnd5e.Character
	for rows.Next() {
		char, err := scanCharacter(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan character")
		}
		chars = append(chars, char)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read characters")
	}

	return &ListByPlayerOutput{Characters: chars}, nil
}

// Update replaces the mutable fields of a character
func (r *sqlRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	char := input.Character
	if char == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if char.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE characters SET
		   name = ?, race = ?, level = ?,
		   strength = ?, dexterity = ?, constitution = ?,
		   intelligence = ?, wisdom = ?, charisma = ?,
		   hit_points = ?, max_hit_points = ?,
		   armor_class = ?, background = ?, appearance = ?,
		   gold = ?, silver = ?, copper = ?,
		   updated_at = ?
		 WHERE id = ?`,
		char.Name, char.Race, char.Level,
		char.Scores.Str, char.Scores.Dex, char.Scores.Con,
		char.Scores.Int, char.Scores.Wis, char.Scores.Cha,
		char.HitPoints, char.MaxHitPoints,
		char.ArmorClass, char.Background, char.Appearance,
		char.Currency.GP, char.Currency.SP, char.Currency.CP,
		database.ToMillis(char.UpdatedAt),
		char.ID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}
	if err := expectAffected(res, "character "+char.ID); err != nil {
		return nil, err
	}

	return &UpdateOutput{Character: char}, nil
}

// Delete removes a character row
func (r *sqlRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete character")
	}
	if err := expectAffected(res, "character "+input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{}, nil
}

// AddInventory inserts one inventory line
func (r *sqlRepository) AddInventory(ctx context.Context, input AddInventoryInput) (*AddInventoryOutput, error) {
	line := input.Line
	if line == nil {
		return nil, errors.InvalidArgument(errLineNil)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", line.ID, vb)
	errors.ValidateRequired("CharacterID", line.CharacterID, vb)
	errors.ValidateRequired("ItemID", line.ItemID, vb)
	if line.Quantity < 1 {
		vb.Field("Quantity", "must be at least 1")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory (id, character_id, item_id, quantity, is_equipped) VALUES (?, ?, ?, ?, ?)`,
		line.ID, line.CharacterID, line.ItemID, line.Quantity, line.IsEquipped)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert inventory line")
	}

	return &AddInventoryOutput{Line: line}, nil
}

// ListInventory returns a character's inventory ordered by item name
func (r *sqlRepository) ListInventory(ctx context.Context, input ListInventoryInput) (*ListInventoryOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT inv.id, inv.character_id, inv.item_id, items.name, inv.quantity, inv.is_equipped
		   FROM inventory inv
		   JOIN items ON items.id = inv.item_id
		  WHERE inv.character_id = ?
		  ORDER BY items.name, inv.id`,
		input.CharacterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}
	defer func() { _ = rows.Close() }()

	var lines []*dnd5e.InventoryLine
	for rows.Next() {
		var line dnd5e.InventoryLine
		if err := rows.Scan(&line.ID, &line.CharacterID, &line.ItemID, &line.ItemName,
			&line.Quantity, &line.IsEquipped); err != nil {
			return nil, errors.Wrap(err, "failed to scan inventory line")
		}
		lines = append(lines, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read inventory")
	}

	return &ListInventoryOutput{Lines: lines}, nil
}

// SetEquipped marks one of a character's inventory lines as equipped or not
func (r *sqlRepository) SetEquipped(ctx context.Context, input SetEquippedInput) (*SetEquippedOutput, error) {
	if err := validateLineRef(input.CharacterID, input.LineID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory SET is_equipped = ? WHERE id = ? AND character_id = ?`,
		input.Equipped, input.LineID, input.CharacterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update inventory line")
	}
	if err := expectAffected(res, "inventory line "+input.LineID); err != nil {
		return nil, err
	}

	var line dnd5e.InventoryLine
	err = r.db.QueryRowContext(ctx,
		`SELECT inv.id, inv.character_id, inv.item_id, items.name, inv.quantity, inv.is_equipped
		   FROM inventory inv
		   JOIN items ON items.id = inv.item_id
		  WHERE inv.id = ?`,
		input.LineID).Scan(&line.ID, &line.CharacterID, &line.ItemID, &line.ItemName, &line.Quantity, &line.IsEquipped)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read inventory line")
	}

	return &SetEquippedOutput{Line: &line}, nil
}

// RemoveInventory deletes one of a character's inventory lines
func (r *sqlRepository) RemoveInventory(ctx context.Context, input RemoveInventoryInput) (*RemoveInventoryOutput, error) {
	if err := validateLineRef(input.CharacterID, input.LineID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM inventory WHERE id = ? AND character_id = ?`,
		input.LineID, input.CharacterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete inventory line")
	}
	if err := expectAffected(res, "inventory line "+input.LineID); err != nil {
		return nil, err
	}

	return &RemoveInventoryOutput{}, nil
}

// DeleteInventory removes every inventory line of a character
func (r *sqlRepository) DeleteInventory(ctx context.Context, input DeleteInventoryInput) (*DeleteInventoryOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE character_id = ?`, input.CharacterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete inventory")
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count deleted inventory")
	}

	return &DeleteInventoryOutput{LinesDeleted: deleted}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*dnd5e.Character, error) {
	var (
		char               dnd5e.Character
		createdAt, updated int64
	)

	err := row.Scan(
		&char.ID, &char.PlayerID, &char.Name, &char.Race, &char.ClassKey, &char.Level,
		&char.Scores.Str, &char.Scores.Dex, &char.Scores.Con,
		&char.Scores.Int, &char.Scores.Wis, &char.Scores.Cha,
		&char.HitPoints, &char.MaxHitPoints,
		&char.ArmorClass, &char.Background, &char.Appearance,
		&char.Currency.GP, &char.Currency.SP, &char.Currency.CP,
		&createdAt, &updated,
	)
	if err != nil {
		return nil, err
	}

	char.CreatedAt = database.FromMillis(createdAt)
	char.UpdatedAt = database.FromMillis(updated)
	return &char, nil
}

func validateLineRef(characterID, lineID string) error {
	if characterID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if lineID == "" {
		return errors.InvalidArgument(errLineIDEmpty)
	}
	return nil
}

func expectAffected(res sql.Result, what string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errors.NotFoundf("%s not found", what)
	}
	return nil
}
