package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

func TestAddItem_StacksByID(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	stim, err := inventory.NewConsumable("stimpak", "Stimpak", "", 50, 3, inventory.Heal(30))
	require.NoError(t, err)
	require.NoError(t, c.AddItem(stim))
	it, ok := c.FindItem("stimpak")
	require.True(t, ok)
	assert.Equal(t, 5, it.Quantity)
	assert.Len(t, c.Inventory, len(inventory.StartingItems()))
}

func TestAddItem_RejectsInvalid(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	err := c.AddItem(inventory.Item{ID: "x"})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
}

func TestRemoveItem_UnequipsLastUnit(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	require.NoError(t, c.RemoveItem(inventory.StartingWeaponID, 1))
	assert.Empty(t, c.EquippedWeapon)
	assert.Equal(t, character.UnarmedDamage, c.EquippedDamage())
	assert.Equal(t, c.Skills.Unarmed, c.WeaponSkill())
	assert.Equal(t, 3, c.WeaponAPCost(3))

	assert.ErrorIs(t, c.RemoveItem("stimpak", 5), gameerr.ErrValidation)
	assert.ErrorIs(t, c.RemoveItem("nothing", 1), gameerr.ErrNotFound)
}

func TestEquip(t *testing.T) {
	c := newChar(t, character.Uniform(6))
	require.NoError(t, c.Equip("baseball_bat"))
	assert.Equal(t, "1d8+STR", c.EquippedDamage())
	assert.Equal(t, c.Skills.MeleeWeapons, c.WeaponSkill())
	assert.Equal(t, 3, c.WeaponAPCost(99))

	assert.ErrorIs(t, c.Equip("stimpak"), gameerr.ErrValidation)
	assert.ErrorIs(t, c.Equip("power_fist"), gameerr.ErrNotFound)
	assert.Equal(t, "baseball_bat", c.EquippedWeapon)

	require.NoError(t, c.Unequip("baseball_bat"))
	assert.Empty(t, c.EquippedWeapon)
	assert.Error(t, c.Unequip(""))
}

func TestUseConsumable_Heal(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	require.NoError(t, c.TakeDamage(25))
	msg, err := c.UseConsumable("stimpak")
	require.NoError(t, err)
	assert.Contains(t, msg, "Restored 25 HP")
	assert.Equal(t, c.MaxHP, c.CurrentHP)
	it, _ := c.FindItem("stimpak")
	assert.Equal(t, 1, it.Quantity)

	_, err = c.UseConsumable("stimpak")
	require.NoError(t, err)
	_, ok := c.FindItem("stimpak")
	assert.False(t, ok, "last unit removed")
}

func TestUseConsumable_RadAway(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	require.NoError(t, c.Equip("baseball_bat"))
	c.EquippedArmor = ""
	require.NoError(t, c.AddRadiation(30))
	assert.Equal(t, 30, c.Rads)
	msg, err := c.UseConsumable("radaway")
	require.NoError(t, err)
	assert.Contains(t, msg, "Removed 30 rads")
	assert.Zero(t, c.Rads)
}

func TestUseConsumable_StatBuffExpires(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	jet, err := inventory.NewConsumable("jet", "Jet", "", 80, 1, inventory.StatBuff("agility", 2, 2))
	require.NoError(t, err)
	require.NoError(t, c.AddItem(jet))

	base := c.WeaponSkill()
	_, err = c.UseConsumable("jet")
	require.NoError(t, err)
	assert.Equal(t, 7, c.EffectiveSpecial().Agility)
	assert.Equal(t, 5, c.Special.Agility, "base SPECIAL untouched")
	assert.Equal(t, base+8, c.WeaponSkill())

	assert.Empty(t, c.TickBuffs())
	assert.Equal(t, []string{"Jet"}, c.TickBuffs())
	assert.Equal(t, 5, c.EffectiveSpecial().Agility)
}

func TestUseConsumable_EmptyStackChangesNothing(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	require.NoError(t, c.TakeDamage(20))
	stim, err := inventory.NewConsumable("stim0", "Old Stimpak", "", 50, 1, inventory.Heal(30))
	require.NoError(t, err)
	stim.Quantity = 0
	c.Inventory = append(c.Inventory, stim)
	hp := c.CurrentHP

	_, err = c.UseConsumable("stim0")
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.Equal(t, hp, c.CurrentHP)
	it, ok := c.FindItem("stim0")
	require.True(t, ok)
	assert.Zero(t, it.Quantity)
}

func TestUseConsumable_NotConsumable(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	_, err := c.UseConsumable("baseball_bat")
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = c.UseConsumable("nuka_cola")
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestArmorClassAndDamageReduction(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	assert.Equal(t, 10+5+7, c.ArmorClass(10))
	assert.Equal(t, 5, c.DamageReduction())
	c.EquippedArmor = ""
	assert.Equal(t, 15, c.ArmorClass(10))
	assert.Zero(t, c.DamageReduction())
}

func TestCarryWeight(t *testing.T) {
	c := newChar(t, character.Uniform(5))
	assert.InDelta(t, 3+3+8+0.5*2+0.5, c.CarryWeight(), 1e-9)
}
