// Package catalog resolves item names against the item compendium
package catalog

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/rpg-builder/internal/rules/catalog Repository,BatchRepository

// Repository is the read side of the item catalog. Both lookups are
// case-insensitive and return items in name-ascending order.
type Repository interface {
	// FindExact returns items whose name equals name
	FindExact(ctx context.Context, name string) ([]*dnd5e.CatalogItem, error)

	// FindFuzzy returns items whose name contains substring
	FindFuzzy(ctx context.Context, substring string) ([]*dnd5e.CatalogItem, error)
}

// BatchRepository can answer every exact lookup in one call. The result is
// keyed by lower-cased name and holds the first item per name.
type BatchRepository interface {
	Repository

	FindExactMany(ctx context.Context, names []string) (map[string]*dnd5e.CatalogItem, error)
}

// MatchResult is the outcome for one requested name
type MatchResult struct {
	Name  string
	Found bool
	// Exact is false when the item came from the substring fallback
	Exact bool
	Item  *dnd5e.CatalogItem
}

// Config configures a Matcher
type Config struct {
	Repository Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	return vb.Build()
}

// Matcher maps item names to catalog items, exact match first and then the
// first substring match
type Matcher struct {
	repo Repository
}

// NewMatcher creates a matcher
func NewMatcher(cfg *Config) (*Matcher, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Matcher{repo: cfg.Repository}, nil
}

// Match returns one result per name, in input order. A name that matches
// nothing is reported with Found=false; only store failures are errors.
func (m *Matcher) Match(ctx context.Context, names []string) ([]MatchResult, error) {
	exact, err := m.exactLookups(ctx, names)
	if err != nil {
		return nil, err
	}

	fuzzy := make(map[string]*dnd5e.CatalogItem)
	results := make([]MatchResult, 0, len(names))

	for _, name := range names {
		key := normalize(name)
		if key == "" {
			results = append(results, MatchResult{Name: name})
			continue
		}

		if item := exact[key]; item != nil {
			results = append(results, MatchResult{Name: name, Found: true, Exact: true, Item: item})
			continue
		}

		item, seen := fuzzy[key]
		if !seen {
			items, err := m.repo.FindFuzzy(ctx, strings.TrimSpace(name))
			if err != nil {
				return nil, errors.Wrapf(err, "failed to search catalog for %q", name)
			}
			if len(items) > 0 {
				item = items[0]
			}
			fuzzy[key] = item
		}

		results = append(results, MatchResult{Name: name, Found: item != nil, Item: item})
	}

	return results, nil
}

// MatchOne resolves a single name
func (m *Matcher) MatchOne(ctx context.Context, name string) (MatchResult, error) {
	results, err := m.Match(ctx, []string{name})
	if err != nil {
		return MatchResult{}, err
	}
	return results[0], nil
}

func (m *Matcher) exactLookups(ctx context.Context, names []string) (map[string]*dnd5e.CatalogItem, error) {
	distinct := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, strings.TrimSpace(name))
	}

	if len(distinct) == 0 {
		return map[string]*dnd5e.CatalogItem{}, nil
	}

	if batch, ok := m.repo.(BatchRepository); ok {
		found, err := batch.FindExactMany(ctx, distinct)
		if err != nil {
			return nil, errors.Wrap(err, "failed to look up catalog items")
		}
		if found == nil {
			found = map[string]*dnd5e.CatalogItem{}
		}
		return found, nil
	}

	found := make(map[string]*dnd5e.CatalogItem, len(distinct))
	for _, name := range distinct {
		items, err := m.repo.FindExact(ctx, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to look up catalog item %q", name)
		}
		if len(items) > 0 {
			found[normalize(name)] = items[0]
		}
	}
	return found, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Unmatched returns the names that were not found, in input order
func Unmatched(results []MatchResult) []string {
	var names []string
	for _, r := range results {
		if !r.Found {
			names = append(names, r.Name)
		}
	}
	return names
}
