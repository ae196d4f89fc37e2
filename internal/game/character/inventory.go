package character

import (
	"fmt"

	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Fallbacks used when nothing is equipped.
const (
	UnarmedDamage             = "1d4"
	DefaultCriticalMultiplier = 2.0
)

// FindItem returns the inventory entry with the given ID.
func (c *Character) FindItem(id string) (inventory.Item, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.Inventory[i], true
	}
	return inventory.Item{}, false
}

func (c *Character) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.Inventory {
		if c.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem adds it to the inventory, merging quantity into an existing entry
// with the same ID.
//
// Postcondition: Returns a validation error and changes nothing if it is invalid.
func (c *Character) AddItem(it inventory.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if i := c.indexOf(it.ID); i >= 0 {
		c.Inventory[i].Quantity += it.Quantity
		return nil
	}
	c.Inventory = append(c.Inventory, it)
	return nil
}

// RemoveItem takes qty units of id out of the inventory. Removing the last
// unit of an equipped item unequips it.
func (c *Character) RemoveItem(id string, qty int) error {
	if qty < 1 {
		return gameerr.Validationf("quantity must be >= 1, got %d", qty)
	}
	i := c.indexOf(id)
	if i < 0 {
		return gameerr.Newf(gameerr.KindNotFound, "you don't have %q", id)
	}
	have := c.Inventory[i].Quantity
	if qty > have {
		return gameerr.Validationf("you only have %d of %q", have, id)
	}
	if qty < have {
		c.Inventory[i].Quantity -= qty
		return nil
	}
	c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
	if c.EquippedWeapon == id {
		c.EquippedWeapon = ""
	}
	if c.EquippedArmor == id {
		c.EquippedArmor = ""
	}
	return nil
}

// Equip equips the weapon or armor with the given ID.
func (c *Character) Equip(id string) error {
	it, ok := c.FindItem(id)
	if !ok {
		return gameerr.Newf(gameerr.KindNotFound, "you don't have %q", id)
	}
	switch it.Kind {
	case inventory.KindWeapon:
		c.EquippedWeapon = id
	case inventory.KindArmor:
		c.EquippedArmor = id
	default:
		return gameerr.Validationf("%s cannot be equipped", it.Name)
	}
	return nil
}

// Unequip clears the slot holding id.
func (c *Character) Unequip(id string) error {
	if id == "" {
		return gameerr.Validationf("nothing to unequip")
	}
	switch id {
	case c.EquippedWeapon:
		c.EquippedWeapon = ""
	case c.EquippedArmor:
		c.EquippedArmor = ""
	default:
		return gameerr.Validationf("%q is not equipped", id)
	}
	return nil
}

// UseConsumable applies the consumable's effect and spends one unit.
//
// Postcondition: Returns a player-facing description of what happened, or an
// error with the character unchanged.
func (c *Character) UseConsumable(id string) (string, error) {
	it, ok := c.FindItem(id)
	if !ok {
		return "", gameerr.Newf(gameerr.KindNotFound, "you don't have %q", id)
	}
	if it.Kind != inventory.KindConsumable || it.Consumable == nil {
		return "", gameerr.Validationf("%s is not a consumable", it.Name)
	}

	if it.Quantity < 1 {
		return "", gameerr.Validationf("you have no %s left", it.Name)
	}

	e := it.Consumable.Effect
	var apply func() string
	switch e.Kind {
	case inventory.EffectHeal:
		if e.Amount < 0 {
			return "", gameerr.Validationf("%s heals a negative amount", it.Name)
		}
		apply = func() string {
			healed, _ := c.Heal(e.Amount)
			return fmt.Sprintf("Used %s. Restored %d HP.", it.Name, healed)
		}
	case inventory.EffectRemoveRadiation:
		apply = func() string {
			removed := min(max(e.Amount, 0), c.Rads)
			c.Rads -= removed
			return fmt.Sprintf("Used %s. Removed %d rads.", it.Name, removed)
		}
	case inventory.EffectStatBuff:
		stat, ok := ParseAttribute(e.Stat)
		if !ok {
			return "", gameerr.Validationf("%s boosts unknown attribute %q", it.Name, e.Stat)
		}
		apply = func() string {
			c.Buffs = append(c.Buffs, Buff{Source: it.Name, Stat: stat, Amount: e.Amount, RoundsLeft: e.Duration})
			return fmt.Sprintf("Used %s. %s %+d for %d rounds.", it.Name, stat, e.Amount, e.Duration)
		}
	default:
		return "", gameerr.Validationf("%s has unknown effect %q", it.Name, e.Kind)
	}

	if err := c.RemoveItem(id, 1); err != nil {
		return "", err
	}
	return apply(), nil
}

// Weapon returns the equipped weapon payload.
func (c *Character) Weapon() (inventory.Weapon, bool) {
	it, ok := c.FindItem(c.EquippedWeapon)
	if !ok || it.Weapon == nil {
		return inventory.Weapon{}, false
	}
	return *it.Weapon, true
}

// EquippedDamage returns the equipped weapon's damage formula or UnarmedDamage.
func (c *Character) EquippedDamage() string {
	if w, ok := c.Weapon(); ok {
		return w.Damage
	}
	return UnarmedDamage
}

// WeaponSkill returns the effective skill governing the equipped weapon,
// falling back to unarmed.
func (c *Character) WeaponSkill() int {
	sk := c.EffectiveSkills()
	w, ok := c.Weapon()
	if !ok {
		return sk.Unarmed
	}
	switch w.Category {
	case inventory.CategorySmallGun:
		return sk.SmallGuns
	case inventory.CategoryBigGun:
		return sk.BigGuns
	case inventory.CategoryEnergy:
		return sk.EnergyWeapons
	case inventory.CategoryMelee:
		return sk.MeleeWeapons
	case inventory.CategoryThrowing:
		return sk.Throwing
	}
	return sk.Unarmed
}

// WeaponAPCost returns the equipped weapon's AP cost, or unarmed when nothing
// is equipped.
func (c *Character) WeaponAPCost(unarmed int) int {
	if w, ok := c.Weapon(); ok {
		return w.APCost
	}
	return unarmed
}

// CriticalMultiplier returns the equipped weapon's multiplier.
func (c *Character) CriticalMultiplier() float64 {
	if w, ok := c.Weapon(); ok {
		return w.CriticalMultiplier
	}
	return DefaultCriticalMultiplier
}

// ArmorClass returns base plus effective agility plus equipped armor class.
func (c *Character) ArmorClass(base int) int {
	ac := base + c.EffectiveSpecial().Agility
	if it, ok := c.FindItem(c.EquippedArmor); ok && it.Armor != nil {
		ac += it.Armor.ArmorClass()
	}
	return ac
}

// DamageReduction returns the equipped armor's percentage reduction.
func (c *Character) DamageReduction() int {
	if it, ok := c.FindItem(c.EquippedArmor); ok && it.Armor != nil {
		return it.Armor.DamageReduction
	}
	return 0
}

// RadiationResistance returns the equipped armor's radiation resistance.
func (c *Character) RadiationResistance() int {
	if it, ok := c.FindItem(c.EquippedArmor); ok && it.Armor != nil {
		return it.Armor.RadiationResistance
	}
	return 0
}

// CarryWeight returns the total weight of the inventory.
func (c *Character) CarryWeight() float64 {
	total := 0.0
	for _, it := range c.Inventory {
		total += it.TotalWeight()
	}
	return total
}
