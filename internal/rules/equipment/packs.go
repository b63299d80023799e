package equipment

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

//go:embed packs.yaml
var packsYAML []byte

type packFile struct {
	Version int `yaml:"version"`
	Packs   []struct {
		Name     string `yaml:"name"`
		Contents []struct {
			Name     string `yaml:"name"`
			Quantity int    `yaml:"quantity"`
		} `yaml:"contents"`
	} `yaml:"packs"`
}

// PackTable maps exact pack display names to their fixed contents
type PackTable struct {
	version int
	names   []string
	packs   map[string][]ItemRequest
}

// LoadPacks parses a versioned pack document
func LoadPacks(data []byte) (*PackTable, error) {
	var file packFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse pack table")
	}
	if file.Version < 1 {
		return nil, errors.InvalidArgument("pack table version is required")
	}

	table := &PackTable{
		version: file.Version,
		packs:   make(map[string][]ItemRequest, len(file.Packs)),
	}

	for _, pack := range file.Packs {
		if pack.Name == "" {
			return nil, errors.InvalidArgument("pack name is required")
		}
		if _, dup := table.packs[pack.Name]; dup {
			return nil, errors.InvalidArgumentf("duplicate pack %q", pack.Name)
		}
		if len(pack.Contents) == 0 {
			return nil, errors.InvalidArgumentf("pack %q has no contents", pack.Name)
		}

		contents := make([]ItemRequest, 0, len(pack.Contents))
		for _, c := range pack.Contents {
			if c.Name == "" || c.Quantity < 1 {
				return nil, errors.InvalidArgumentf("pack %q has an invalid entry", pack.Name)
			}
			contents = append(contents, ItemRequest{ItemName: c.Name, Quantity: c.Quantity})
		}

		table.names = append(table.names, pack.Name)
		table.packs[pack.Name] = contents
	}

	return table, nil
}

var defaultPacks = mustLoadPacks(packsYAML)

func mustLoadPacks(data []byte) *PackTable {
	table, err := LoadPacks(data)
	if err != nil {
		panic(fmt.Sprintf("embedded pack table: %v", err))
	}
	return table
}

// DefaultPacks returns the embedded table of the seven standard packs
func DefaultPacks() *PackTable {
	return defaultPacks
}

// Version returns the table version
func (t *PackTable) Version() int {
	return t.version
}

// Names returns pack names in table order
func (t *PackTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Contents returns a copy of a pack's contents, keyed by exact name
func (t *PackTable) Contents(name string) ([]ItemRequest, bool) {
	contents, ok := t.packs[name]
	if !ok {
		return nil, false
	}
	return append([]ItemRequest(nil), contents...), true
}
