package inventory

import (
	"errors"
	"fmt"
)

// DamageType is the kind of harm a weapon deals.
type DamageType string

// Damage types.
const (
	DamageNormal    DamageType = "normal"
	DamageLaser     DamageType = "laser"
	DamagePlasma    DamageType = "plasma"
	DamageFire      DamageType = "fire"
	DamageExplosive DamageType = "explosive"
	DamagePoison    DamageType = "poison"
)

var validDamageTypes = map[DamageType]bool{
	DamageNormal: true, DamageLaser: true, DamagePlasma: true,
	DamageFire: true, DamageExplosive: true, DamagePoison: true,
}

// Category is the weapon family, which selects the skill used to attack.
type Category string

// Weapon categories.
const (
	CategorySmallGun Category = "small_gun"
	CategoryBigGun   Category = "big_gun"
	CategoryEnergy   Category = "energy_weapon"
	CategoryMelee    Category = "melee_weapon"
	CategoryUnarmed  Category = "unarmed"
	CategoryThrowing Category = "throwing"
)

var validCategories = map[Category]bool{
	CategorySmallGun: true, CategoryBigGun: true, CategoryEnergy: true,
	CategoryMelee: true, CategoryUnarmed: true, CategoryThrowing: true,
}

// Weapon is the payload of a weapon item.
type Weapon struct {
	// Damage is a dice formula that may reference STR, e.g. "1d8+STR".
	Damage             string     `json:"damage" yaml:"damage"`
	DamageType         DamageType `json:"damage_type" yaml:"damage_type"`
	Category           Category   `json:"category" yaml:"category"`
	APCost             int        `json:"ap_cost" yaml:"ap_cost"`
	AmmoType           string     `json:"ammo_type,omitempty" yaml:"ammo_type,omitempty"`
	Range              int        `json:"range" yaml:"range"`
	CriticalMultiplier float64    `json:"critical_multiplier" yaml:"critical_multiplier"`
}

// Validate checks the weapon's invariants.
func (w Weapon) Validate() error {
	var errs []error
	if err := validDamage(w.Damage); err != nil {
		errs = append(errs, fmt.Errorf("damage: %w", err))
	}
	if !validDamageTypes[w.DamageType] {
		errs = append(errs, fmt.Errorf("unknown damage_type %q", w.DamageType))
	}
	if !validCategories[w.Category] {
		errs = append(errs, fmt.Errorf("unknown category %q", w.Category))
	}
	if w.APCost < 1 {
		errs = append(errs, fmt.Errorf("ap_cost must be >= 1, got %d", w.APCost))
	}
	if w.Range < 0 {
		errs = append(errs, fmt.Errorf("range must be >= 0, got %d", w.Range))
	}
	if w.CriticalMultiplier < 1 {
		errs = append(errs, fmt.Errorf("critical_multiplier must be >= 1, got %g", w.CriticalMultiplier))
	}
	return errors.Join(errs...)
}

// IsMelee reports whether the weapon is used at arm's length.
func (w Weapon) IsMelee() bool {
	return w.Category == CategoryMelee || w.Category == CategoryUnarmed
}
