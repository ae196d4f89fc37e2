// Package inventory defines the item variants carried by characters: weapons,
// armor, consumables and miscellaneous loot, plus the item catalog used to
// grant items by ID.
package inventory

import (
	"errors"
	"fmt"

	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Kind selects which variant payload an Item carries.
type Kind string

// Item kinds.
const (
	KindWeapon     Kind = "weapon"
	KindArmor      Kind = "armor"
	KindConsumable Kind = "consumable"
	KindMisc       Kind = "misc"
)

// Default weights by kind, used when a definition leaves weight unset.
const (
	DefaultWeaponWeight     = 3.0
	DefaultArmorWeight      = 8.0
	DefaultConsumableWeight = 0.5
)

// Item is an immutable value apart from its quantity.
//
// Invariant: exactly the payload matching Kind is non-nil (none for misc).
type Item struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Kind        Kind        `json:"kind" yaml:"kind"`
	Weight      float64     `json:"weight" yaml:"weight"`
	Value       int         `json:"value" yaml:"value"`
	Quantity    int         `json:"quantity" yaml:"quantity"`
	Weapon      *Weapon     `json:"weapon,omitempty" yaml:"weapon,omitempty"`
	Armor       *Armor      `json:"armor,omitempty" yaml:"armor,omitempty"`
	Consumable  *Consumable `json:"consumable,omitempty" yaml:"consumable,omitempty"`
}

// WithQuantity returns a copy of it holding n units.
func (it Item) WithQuantity(n int) Item {
	it.Quantity = n
	return it
}

// Stackable reports whether units of this item merge into one inventory entry.
func (it Item) Stackable() bool {
	return it.Kind == KindConsumable || it.Kind == KindMisc
}

// TotalWeight returns weight times quantity.
func (it Item) TotalWeight() float64 {
	return it.Weight * float64(it.Quantity)
}

// Validate checks field coherence for the item's variant.
//
// Postcondition: Returns nil iff all invariants hold; otherwise a validation
// error listing every violation.
func (it Item) Validate() error {
	var errs []error
	if it.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if it.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if it.Weight < 0 {
		errs = append(errs, fmt.Errorf("weight must be >= 0, got %g", it.Weight))
	}
	if it.Value < 0 {
		errs = append(errs, fmt.Errorf("value must be >= 0, got %d", it.Value))
	}
	if it.Quantity < 1 {
		errs = append(errs, fmt.Errorf("quantity must be >= 1, got %d", it.Quantity))
	}

	payloads := 0
	for _, set := range []bool{it.Weapon != nil, it.Armor != nil, it.Consumable != nil} {
		if set {
			payloads++
		}
	}
	switch it.Kind {
	case KindWeapon:
		if it.Weapon == nil {
			errs = append(errs, errors.New("weapon payload required"))
		} else if err := it.Weapon.Validate(); err != nil {
			errs = append(errs, err)
		}
	case KindArmor:
		if it.Armor == nil {
			errs = append(errs, errors.New("armor payload required"))
		} else if err := it.Armor.Validate(); err != nil {
			errs = append(errs, err)
		}
	case KindConsumable:
		if it.Consumable == nil {
			errs = append(errs, errors.New("consumable payload required"))
		} else if err := it.Consumable.Effect.Validate(); err != nil {
			errs = append(errs, err)
		}
	case KindMisc:
	default:
		errs = append(errs, fmt.Errorf("kind must be one of weapon, armor, consumable, misc; got %q", it.Kind))
	}
	if (it.Kind == KindMisc && payloads > 0) || payloads > 1 {
		errs = append(errs, fmt.Errorf("kind %q carries a foreign payload", it.Kind))
	}

	if len(errs) > 0 {
		return gameerr.Wrap(gameerr.KindValidation, errors.Join(errs...), fmt.Sprintf("item %q", it.ID))
	}
	return nil
}

// NewWeapon builds a weapon item with quantity 1 and the default weapon weight.
//
// Postcondition: Returns a valid Item or a validation error.
func NewWeapon(id, name, description string, value int, w Weapon) (Item, error) {
	return build(Item{
		ID: id, Name: name, Description: description,
		Kind: KindWeapon, Weight: DefaultWeaponWeight, Value: value, Quantity: 1,
		Weapon: &w,
	})
}

// NewArmor builds an armor item with quantity 1 and the default armor weight.
func NewArmor(id, name, description string, value int, a Armor) (Item, error) {
	return build(Item{
		ID: id, Name: name, Description: description,
		Kind: KindArmor, Weight: DefaultArmorWeight, Value: value, Quantity: 1,
		Armor: &a,
	})
}

// NewConsumable builds a consumable item holding quantity units.
func NewConsumable(id, name, description string, value, quantity int, e Effect) (Item, error) {
	return build(Item{
		ID: id, Name: name, Description: description,
		Kind: KindConsumable, Weight: DefaultConsumableWeight, Value: value, Quantity: quantity,
		Consumable: &Consumable{Effect: e},
	})
}

// NewMisc builds a payload-free item.
func NewMisc(id, name, description string, weight float64, value, quantity int) (Item, error) {
	return build(Item{
		ID: id, Name: name, Description: description,
		Kind: KindMisc, Weight: weight, Value: value, Quantity: quantity,
	})
}

func build(it Item) (Item, error) {
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// validDamage reports whether a damage formula parses once STR is resolved.
func validDamage(formula string) error {
	_, err := dice.Parse(dice.ResolveStatModifier(formula, 5).String())
	return err
}
