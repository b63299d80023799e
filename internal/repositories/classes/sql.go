package classes

import (
	"context"
	"database/sql"

	"github.com/KirkDiggler/rpg-builder/internal/database"
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

const (
	classColumns = `class_key, name, hit_die, caster_type, starting_equipment`

	errClassKeyEmpty = "class key cannot be empty"
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

// NewSQLRepository creates a class store backed by the classes table
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

// Get returns a class by key
func (r *sqlRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errClassKeyEmpty)
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+classColumns+` FROM classes WHERE class_key = ?`, input.Key)
	class, err := scanClass(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("class %s not found", input.Key)
	}
	if err != nil {
		return nil, err
	}

	return &GetOutput{Class: class}, nil
}

// List returns every class in key order
func (r *sqlRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+classColumns+` FROM classes ORDER BY class_key`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list classes")
	}
	defer func() { _ = rows.Close() }()

	var classes []*Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read classes")
	}

	return &ListOutput{Classes: classes}, nil
}

// ListFeatures returns a class's features ordered by level
func (r *sqlRepository) ListFeatures(ctx context.Context, input ListFeaturesInput) (*ListFeaturesOutput, error) {
	if input.ClassKey == "" {
		return nil, errors.InvalidArgument(errClassKeyEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT class_key, name, level, description FROM class_features
		  WHERE class_key = ? ORDER BY level, name`,
		input.ClassKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list class features")
	}
	defer func() { _ = rows.Close() }()

	var features []*dnd5e.Feature
	for rows.Next() {
		var f dnd5e.Feature
		if err := rows.Scan(&f.ClassKey, &f.Name, &f.Level, &f.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan class feature")
		}
		features = append(features, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read class features")
	}

	return &ListFeaturesOutput{Features: features}, nil
}

// ListSpells returns a class's spells ordered by level then name
func (r *sqlRepository) ListSpells(ctx context.Context, input ListSpellsInput) (*ListSpellsOutput, error) {
	if input.ClassKey == "" {
		return nil, errors.InvalidArgument(errClassKeyEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name, level, school FROM spells WHERE class_key = ? ORDER BY level, name`,
		input.ClassKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spells")
	}
	defer func() { _ = rows.Close() }()

	var spells []*dnd5e.Spell
	for rows.Next() {
		var s dnd5e.Spell
		if err := rows.Scan(&s.Name, &s.Level, &s.School); err != nil {
			return nil, errors.Wrap(err, "failed to scan spell")
		}
		spells = append(spells, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read spells")
	}

	return &ListSpellsOutput{Spells: spells}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClass(row rowScanner) (*Class, error) {
	var (
		class      Class
		casterType string
		rawGrant   string
	)

	if err := row.Scan(&class.Key, &class.Name, &class.HitDie, &casterType, &rawGrant); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to scan class")
	}

	grant, err := equipment.ParseGrant([]byte(rawGrant))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "stored starting equipment for "+class.Key+" is malformed")
	}

	class.CasterType = dnd5e.CasterType(casterType)
	class.Grant = grant
	return &class, nil
}
