package inventory

import "fmt"

// baseArmorClass is added to half the damage reduction to give armor class.
const baseArmorClass = 5

// Armor is the payload of an armor item.
type Armor struct {
	// DamageReduction is the percentage of incoming damage absorbed.
	DamageReduction     int `json:"damage_reduction" yaml:"damage_reduction"`
	RadiationResistance int `json:"radiation_resistance" yaml:"radiation_resistance"`
}

// ArmorClass is derived on every read: 5 + DamageReduction/2.
func (a Armor) ArmorClass() int {
	return baseArmorClass + a.DamageReduction/2
}

// Validate checks the armor's invariants.
func (a Armor) Validate() error {
	if a.DamageReduction < 0 || a.DamageReduction > 100 {
		return fmt.Errorf("damage_reduction must be in [0,100], got %d", a.DamageReduction)
	}
	if a.RadiationResistance < 0 || a.RadiationResistance > 100 {
		return fmt.Errorf("radiation_resistance must be in [0,100], got %d", a.RadiationResistance)
	}
	return nil
}
