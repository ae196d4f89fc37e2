package inventory

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

//go:embed content/*.yaml
var builtinContent embed.FS

// catalogFile is the YAML layout of a catalog file.
type catalogFile struct {
	Items []Item `yaml:"items"`
}

// Catalog holds item definitions indexed by ID. It is read-only after loading.
type Catalog struct {
	items map[string]Item
}

// NewCatalog builds a Catalog from items, defaulting quantity to 1 and weight
// by kind.
//
// Postcondition: Returns a Catalog or an error on the first invalid or
// duplicate definition.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{items: make(map[string]Item, len(items))}
	for _, it := range items {
		if err := c.register(it); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) register(it Item) error {
	if it.Quantity == 0 {
		it.Quantity = 1
	}
	if it.Weight == 0 {
		switch it.Kind {
		case KindWeapon:
			it.Weight = DefaultWeaponWeight
		case KindArmor:
			it.Weight = DefaultArmorWeight
		case KindConsumable:
			it.Weight = DefaultConsumableWeight
		}
	}
	if err := it.Validate(); err != nil {
		return fmt.Errorf("inventory: catalog: %w", err)
	}
	if _, exists := c.items[it.ID]; exists {
		return gameerr.Newf(gameerr.KindConflict, "inventory: catalog: item ID %q already registered", it.ID)
	}
	c.items[it.ID] = it
	return nil
}

// DefaultCatalog loads the catalog shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalogFS(builtinContent, "content")
}

// LoadCatalog reads every *.yaml and *.yml file in dir.
//
// Precondition: dir is a readable directory.
func LoadCatalog(dir string) (*Catalog, error) {
	return LoadCatalogFS(os.DirFS(dir), ".")
}

// LoadCatalogFS reads every *.yaml and *.yml file under root in fsys.
//
// Postcondition: Returns a Catalog with all definitions, or the first error.
func LoadCatalogFS(fsys fs.FS, root string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("inventory: reading catalog dir %q: %w", root, err)
	}
	var items []Item
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		name := path.Join(root, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("inventory: reading %q: %w", name, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("inventory: parsing %q: %w", name, err)
		}
		items = append(items, f.Items...)
	}
	return NewCatalog(items)
}

// Lookup returns the definition for id.
//
// Postcondition: ok is true iff id is registered.
func (c *Catalog) Lookup(id string) (Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Grant returns a fresh single-unit copy of the item with the given ID. IDs
// are matched case-insensitively with spaces treated as underscores, so
// "Combat Shotgun" resolves to combat_shotgun.
//
// Postcondition: Returns the item or a not-found error.
func (c *Catalog) Grant(id string) (Item, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "_")
	it, ok := c.items[key]
	if !ok {
		return Item{}, gameerr.Newf(gameerr.KindNotFound, "inventory: unknown item %q", id)
	}
	return it.WithQuantity(1), nil
}

// IDs returns all registered IDs in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered items.
func (c *Catalog) Len() int {
	return len(c.items)
}
