package inventory

// StartingWeaponID and StartingArmorID are equipped on new characters.
const (
	StartingWeaponID = "10mm_pistol"
	StartingArmorID  = "leather_armor"
)

// StartingItems returns the fixed kit every new character receives: a
// pistol, a bat, leather armor, two stimpaks and a RadAway.
//
// Postcondition: every returned Item passes Validate.
func StartingItems() []Item {
	return []Item{
		{
			ID: StartingWeaponID, Name: "10mm Pistol",
			Description: "A reliable semi-automatic pistol chambered in 10mm.",
			Kind:        KindWeapon, Weight: DefaultWeaponWeight, Value: 150, Quantity: 1,
			Weapon: &Weapon{
				Damage: "1d10+2", DamageType: DamageNormal, Category: CategorySmallGun,
				APCost: 4, AmmoType: "10mm", Range: 30, CriticalMultiplier: 2,
			},
		},
		{
			ID: "baseball_bat", Name: "Baseball Bat",
			Description: "A sturdy wooden bat, scuffed from years of use.",
			Kind:        KindWeapon, Weight: DefaultWeaponWeight, Value: 50, Quantity: 1,
			Weapon: &Weapon{
				Damage: "1d8+STR", DamageType: DamageNormal, Category: CategoryMelee,
				APCost: 3, Range: 1, CriticalMultiplier: 2,
			},
		},
		{
			ID: StartingArmorID, Name: "Leather Armor",
			Description: "Cured brahmin hide stitched into a jacket and chaps.",
			Kind:        KindArmor, Weight: DefaultArmorWeight, Value: 200, Quantity: 1,
			Armor: &Armor{DamageReduction: 5, RadiationResistance: 0},
		},
		{
			ID: "stimpak", Name: "Stimpak",
			Description: "A syringe of healing chemicals. Restores 30 HP.",
			Kind:        KindConsumable, Weight: DefaultConsumableWeight, Value: 50, Quantity: 2,
			Consumable: &Consumable{Effect: Heal(30)},
		},
		{
			ID: "radaway", Name: "RadAway",
			Description: "An intravenous chemical that flushes radiation from the body.",
			Kind:        KindConsumable, Weight: DefaultConsumableWeight, Value: 75, Quantity: 1,
			Consumable: &Consumable{Effect: RemoveRadiation(50)},
		},
	}
}
