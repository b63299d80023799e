package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

// MemoryRepository is a read-only in-memory catalog
type MemoryRepository struct {
	items []*dnd5e.CatalogItem
}

// NewMemoryRepository holds items in name-ascending order
func NewMemoryRepository(items []*dnd5e.CatalogItem) *MemoryRepository {
	sorted := append([]*dnd5e.CatalogItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return &MemoryRepository{items: sorted}
}

var _ BatchRepository = (*MemoryRepository)(nil)

// FindExact returns items whose name equals name, ignoring case
func (r *MemoryRepository) FindExact(_ context.Context, name string) ([]*dnd5e.CatalogItem, error) {
	var out []*dnd5e.CatalogItem
	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			out = append(out, item)
		}
	}
	return out, nil
}

// FindFuzzy returns items whose name contains substring, ignoring case
func (r *MemoryRepository) FindFuzzy(_ context.Context, substring string) ([]*dnd5e.CatalogItem, error) {
	needle := strings.ToLower(substring)
	var out []*dnd5e.CatalogItem
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out, nil
}

// FindExactMany answers every exact lookup in one pass
func (r *MemoryRepository) FindExactMany(_ context.Context, names []string) (map[string]*dnd5e.CatalogItem, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[normalize(name)] = struct{}{}
	}

	found := make(map[string]*dnd5e.CatalogItem, len(names))
	for _, item := range r.items {
		key := normalize(item.Name)
		if _, ok := wanted[key]; !ok {
			continue
		}
		if _, dup := found[key]; !dup {
			found[key] = item
		}
	}
	return found, nil
}
