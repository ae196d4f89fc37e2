package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

func TestDefaultCatalog_LoadsAndValidates(t *testing.T) {
	c, err := inventory.DefaultCatalog()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 20)

	for _, it := range inventory.StartingItems() {
		def, ok := c.Lookup(it.ID)
		require.True(t, ok, "starting item %q missing from catalog", it.ID)
		assert.Equal(t, it.Kind, def.Kind)
	}

	rifle, ok := c.Lookup("hunting_rifle")
	require.True(t, ok)
	assert.Equal(t, ".308", rifle.Weapon.AmmoType)
	assert.InDelta(t, 2.5, rifle.Weapon.CriticalMultiplier, 1e-9)
	assert.Equal(t, inventory.DefaultWeaponWeight, rifle.Weight)
}

func TestCatalog_GrantNormalisesID(t *testing.T) {
	c, err := inventory.DefaultCatalog()
	require.NoError(t, err)

	it, err := c.Grant("Combat Shotgun")
	require.NoError(t, err)
	assert.Equal(t, "combat_shotgun", it.ID)
	assert.Equal(t, 1, it.Quantity)

	_, err = c.Grant("bfg_9000")
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	items := inventory.StartingItems()
	_, err := inventory.NewCatalog(append(items, items[0]))
	assert.ErrorIs(t, err, gameerr.ErrConflict)
}

func TestLoadCatalog_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(`
items:
  - id: mutfruit
    name: Mutfruit
    kind: consumable
    value: 5
    consumable: {effect: {kind: heal, amount: 5}}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644))

	c, err := inventory.LoadCatalog(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"mutfruit"}, c.IDs())
	fruit, _ := c.Lookup("mutfruit")
	assert.Equal(t, inventory.DefaultConsumableWeight, fruit.Weight)
}

func TestLoadCatalog_InvalidItem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
items:
  - id: broken
    name: Broken
    kind: weapon
`), 0o644))
	_, err := inventory.LoadCatalog(dir)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
}
