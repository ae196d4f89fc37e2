package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

func validWeapon() inventory.Weapon {
	return inventory.Weapon{
		Damage: "1d8+STR", DamageType: inventory.DamageNormal, Category: inventory.CategoryMelee,
		APCost: 3, Range: 1, CriticalMultiplier: 2,
	}
}

func TestNewWeapon_Valid(t *testing.T) {
	it, err := inventory.NewWeapon("bat", "Bat", "", 50, validWeapon())
	require.NoError(t, err)
	assert.Equal(t, inventory.KindWeapon, it.Kind)
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, inventory.DefaultWeaponWeight, it.Weight)
	assert.True(t, it.Weapon.IsMelee())
}

func TestNewWeapon_RejectsIncoherentFields(t *testing.T) {
	w := validWeapon()
	w.Damage = "lots"
	w.APCost = 0
	w.CriticalMultiplier = 0.5
	_, err := inventory.NewWeapon("bad", "Bad", "", 1, w)
	require.Error(t, err)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.Contains(t, err.Error(), "damage")
	assert.Contains(t, err.Error(), "ap_cost")
	assert.Contains(t, err.Error(), "critical_multiplier")
}

func TestArmor_ArmorClassDerivedOnRead(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dr := rapid.IntRange(0, 100).Draw(rt, "dr")
		it, err := inventory.NewArmor("a", "A", "", 10, inventory.Armor{DamageReduction: dr})
		require.NoError(rt, err)
		assert.Equal(rt, 5+dr/2, it.Armor.ArmorClass())
	})
}

func TestNewConsumable_EffectValidation(t *testing.T) {
	_, err := inventory.NewConsumable("s", "Stim", "", 50, 1, inventory.Heal(0))
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	_, err = inventory.NewConsumable("b", "Buff", "", 50, 1, inventory.StatBuff("", 2, 3))
	assert.Error(t, err)

	it, err := inventory.NewConsumable("j", "Jet", "", 80, 3, inventory.StatBuff("agility", 2, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, it.Quantity)
	assert.True(t, it.Stackable())
	assert.InDelta(t, 1.5, it.TotalWeight(), 1e-9)
}

func TestItem_ValidateRejectsForeignPayload(t *testing.T) {
	it, err := inventory.NewMisc("tape", "Tape", "", 0.1, 10, 1)
	require.NoError(t, err)
	it.Armor = &inventory.Armor{DamageReduction: 1}
	assert.Error(t, it.Validate())
}

func TestItem_WithQuantityCopies(t *testing.T) {
	it, err := inventory.NewMisc("tape", "Tape", "", 0.1, 10, 1)
	require.NoError(t, err)
	more := it.WithQuantity(4)
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, 4, more.Quantity)
}

func TestStartingItems(t *testing.T) {
	items := inventory.StartingItems()
	var weapons, armor, heals, rads int
	for _, it := range items {
		require.NoError(t, it.Validate(), it.ID)
		switch it.Kind {
		case inventory.KindWeapon:
			weapons++
		case inventory.KindArmor:
			armor++
		case inventory.KindConsumable:
			switch it.Consumable.Effect.Kind {
			case inventory.EffectHeal:
				heals++
			case inventory.EffectRemoveRadiation:
				rads++
			}
		}
	}
	assert.Equal(t, 2, weapons)
	assert.Equal(t, 1, armor)
	assert.Equal(t, 1, heals)
	assert.Equal(t, 1, rads)
	assert.Equal(t, inventory.StartingWeaponID, items[0].ID)
}

func TestStartingItems_IsFreshEachCall(t *testing.T) {
	a := inventory.StartingItems()
	b := inventory.StartingItems()
	a[0].Quantity = 99
	a[0].Weapon.APCost = 99
	assert.Equal(t, 1, b[0].Quantity)
	assert.Equal(t, 4, b[0].Weapon.APCost)
}
