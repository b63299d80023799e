package items

import (
	"context"
	"database/sql"
	"strings"

	"github.com/KirkDiggler/rpg-builder/internal/database"
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

const (
	itemColumns = `id, name, category, cost_gp, weight, description`

	errItemIDEmpty = "item ID cannot be empty"
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

// NewSQLRepository creates a catalog backed by the items table
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

// FindExact matches the full name, ignoring case
func (r *sqlRepository) FindExact(ctx context.Context, name string) ([]*dnd5e.CatalogItem, error) {
	return r.query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE LOWER(name) = LOWER(?) ORDER BY name, id`,
		strings.TrimSpace(name))
}

// FindFuzzy matches names containing substring, ignoring case
func (r *sqlRepository) FindFuzzy(ctx context.Context, substring string) ([]*dnd5e.CatalogItem, error) {
	return r.query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY name, id`,
		containsPattern(substring))
}

// FindExactMany resolves many exact names in one query
func (r *sqlRepository) FindExactMany(ctx context.Context, names []string) (map[string]*dnd5e.CatalogItem, error) {
	found := make(map[string]*dnd5e.CatalogItem, len(names))
	if len(names) == 0 {
		return found, nil
	}

	// both sides go through the database's LOWER so folding matches
	// FindExact on every driver
	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, strings.TrimSpace(name))
	}

	items, err := r.query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE LOWER(name) IN (`+database.Placeholders(len(args), "LOWER(?)")+`) ORDER BY name, id`,
		args...)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		key := strings.ToLower(item.Name)
		if _, dup := found[key]; !dup {
			found[key] = item
		}
	}
	return found, nil
}

// Get returns one item by ID
func (r *sqlRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	items, err := r.query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, input.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NotFoundf("item %s not found", input.ID)
	}

	return &GetOutput{Item: items[0]}, nil
}

// Search returns up to Limit items whose name contains Query
func (r *sqlRepository) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return &SearchOutput{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	items, err := r.query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY name, id LIMIT ?`,
		containsPattern(query), limit)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Items: items}, nil
}

func (r *sqlRepository) query(ctx context.Context, query string, args ...any) ([]*dnd5e.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query items")
	}
	defer func() { _ = rows.Close() }()

	var items []*dnd5e.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read items")
	}

	return items, nil
}

func scanItem(rows *sql.Rows) (*dnd5e.CatalogItem, error) {
	var item dnd5e.CatalogItem
	if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.CostGP, &item.Weight, &item.Description); err != nil {
		return nil, errors.Wrap(err, "failed to scan item")
	}
	return &item, nil
}

// containsPattern builds a LIKE pattern matching s anywhere, with LIKE
// metacharacters in s taken literally
func containsPattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(strings.TrimSpace(s)))
	return "%" + escaped + "%"
}
