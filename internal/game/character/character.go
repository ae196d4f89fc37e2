package character

import (
	"fmt"

	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Character is the player's persistent state.
//
// Invariant: 0 <= CurrentHP <= MaxHP; 0 <= CurrentAP <= MaxAP; EquippedWeapon
// and EquippedArmor are empty or name an inventory entry of the right kind.
// Fields are exported for serialization; mutate through methods.
type Character struct {
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	Experience int     `json:"experience"`
	Special    Special `json:"special"`
	Skills     Skills  `json:"skills"`
	MaxHP      int     `json:"max_hp"`
	CurrentHP  int     `json:"current_hp"`
	MaxAP      int     `json:"max_ap"`
	CurrentAP  int     `json:"current_ap"`
	Caps       int     `json:"caps"`
	Rads       int     `json:"rads"`

	Inventory      []inventory.Item `json:"inventory"`
	EquippedWeapon string           `json:"equipped_weapon,omitempty"`
	EquippedArmor  string           `json:"equipped_armor,omitempty"`

	Traits []string `json:"traits,omitempty"`
	Perks  []string `json:"perks,omitempty"`
	Buffs  []Buff   `json:"buffs,omitempty"`

	rules Rules
}

// New builds a character with derived skills, full HP/AP pools, starting
// caps and the starting kit with its pistol and armor equipped.
//
// Precondition: rules passes Validate.
// Postcondition: Returns a Character or a validation error for a bad name or
// an out-of-range attribute. The SPECIAL total is not enforced; see Create.
func New(name string, special Special, rules Rules) (*Character, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := special.Validate(); err != nil {
		return nil, err
	}
	c := &Character{
		Name:      name,
		Level:     rules.StartingLevel,
		Special:   special,
		Skills:    DeriveSkills(special),
		MaxHP:     rules.MaxHP(special, rules.StartingLevel),
		MaxAP:     rules.MaxAP(special),
		Caps:      rules.StartingCaps,
		Inventory: inventory.StartingItems(),
		rules:     rules,
	}
	c.CurrentHP = c.MaxHP
	c.CurrentAP = c.MaxAP
	c.EquippedWeapon = inventory.StartingWeaponID
	c.EquippedArmor = inventory.StartingArmorID
	return c, nil
}

// Create is the character-creation flow: New plus the campaign SPECIAL total.
func Create(name string, special Special, rules Rules) (*Character, error) {
	if err := special.ValidateTotal(rules.SpecialTotal); err != nil {
		return nil, err
	}
	return New(name, special, rules)
}

// Rules returns the constants the character grows by.
func (c *Character) Rules() Rules {
	if c.rules == (Rules{}) {
		return DefaultRules()
	}
	return c.rules
}

// SetRules replaces the growth constants, e.g. after loading a save.
func (c *Character) SetRules(r Rules) {
	c.rules = r
}

// TakeDamage lowers HP by amount, flooring at zero.
//
// Postcondition: on success CurrentHP == max(old-amount, 0). A negative
// amount is rejected with a validation error and changes nothing.
func (c *Character) TakeDamage(amount int) error {
	if amount < 0 {
		return gameerr.Validationf("damage must be non-negative, got %d", amount)
	}
	c.CurrentHP = max(c.CurrentHP-amount, 0)
	return nil
}

// Heal raises HP by amount, capped at MaxHP, and returns the HP restored.
func (c *Character) Heal(amount int) (int, error) {
	if amount < 0 {
		return 0, gameerr.Validationf("heal amount must be non-negative, got %d", amount)
	}
	before := c.CurrentHP
	c.CurrentHP = min(c.CurrentHP+amount, c.MaxHP)
	return c.CurrentHP - before, nil
}

// IsAlive reports whether CurrentHP > 0.
func (c *Character) IsAlive() bool {
	return c.CurrentHP > 0
}

// UseAP spends amount action points. It is the only way AP is spent.
//
// Postcondition: returns true and deducts exactly amount when
// 0 <= amount <= CurrentAP; otherwise returns false and changes nothing.
func (c *Character) UseAP(amount int) bool {
	if amount < 0 || amount > c.CurrentAP {
		return false
	}
	c.CurrentAP -= amount
	return true
}

// RestoreAP refills action points to MaxAP.
func (c *Character) RestoreAP() {
	c.CurrentAP = c.MaxAP
}

// AddExperience grants xp.
func (c *Character) AddExperience(xp int) error {
	if xp < 0 {
		return gameerr.Validationf("experience must be non-negative, got %d", xp)
	}
	c.Experience += xp
	return nil
}

// CanLevelUp reports whether accumulated experience has earned a new level.
func (c *Character) CanLevelUp() bool {
	return c.Rules().LevelFor(c.Experience) > c.Level
}

// XPToNextLevel returns the experience still needed for the next level.
func (c *Character) XPToNextLevel() int {
	return max(c.Level*c.Rules().XPPerLevel-c.Experience, 0)
}

// LevelUp raises the character to the level its experience has earned,
// optionally adding one point to boost (pass "" for none). Skills, MaxHP and
// MaxAP are recomputed and both pools refilled.
//
// Postcondition: Returns the number of levels gained, or a validation error
// with the character unchanged.
func (c *Character) LevelUp(boost Attribute) (int, error) {
	r := c.Rules()
	target := r.LevelFor(c.Experience)
	if target <= c.Level {
		return 0, gameerr.Validationf("not enough experience to level up: need %d more", c.XPToNextLevel())
	}
	special := c.Special
	if boost != "" {
		cur := special.Get(boost)
		if cur == 0 {
			return 0, gameerr.Validationf("unknown attribute %q", boost)
		}
		if err := ValidateStat(boost, cur+1); err != nil {
			return 0, err
		}
		special = special.With(boost, cur+1)
	}

	gained := target - c.Level
	c.Level = target
	c.Special = special
	c.Skills = DeriveSkills(special)
	c.MaxHP = r.MaxHP(special, target)
	c.MaxAP = r.MaxAP(special)
	c.CurrentHP = c.MaxHP
	c.CurrentAP = c.MaxAP
	return gained, nil
}

// AddRadiation records rads absorbed, reduced by equipped armor resistance.
func (c *Character) AddRadiation(rads int) error {
	if rads < 0 {
		return gameerr.Validationf("radiation must be non-negative, got %d", rads)
	}
	c.Rads += rads * (100 - c.RadiationResistance()) / 100
	return nil
}

// AddCaps adjusts currency; the balance never drops below zero.
func (c *Character) AddCaps(delta int) error {
	if c.Caps+delta < 0 {
		return gameerr.Validationf("not enough caps: have %d, need %d", c.Caps, -delta)
	}
	c.Caps += delta
	return nil
}

// Reconcile restores invariants on a character read from storage: skills are
// re-derived, pools clamped, invalid inventory entries dropped and dangling
// equipment references cleared.
func (c *Character) Reconcile() {
	r := c.Rules()
	if c.Level < 1 {
		c.Level = 1
	}
	c.Skills = DeriveSkills(c.Special)
	if c.MaxHP <= 0 {
		c.MaxHP = r.MaxHP(c.Special, c.Level)
	}
	if c.MaxAP <= 0 {
		c.MaxAP = r.MaxAP(c.Special)
	}
	c.CurrentHP = min(max(c.CurrentHP, 0), c.MaxHP)
	c.CurrentAP = min(max(c.CurrentAP, 0), c.MaxAP)
	kept := make([]inventory.Item, 0, len(c.Inventory))
	for _, it := range c.Inventory {
		if it.Validate() == nil {
			kept = append(kept, it)
		}
	}
	c.Inventory = kept
	if it, ok := c.FindItem(c.EquippedWeapon); !ok || it.Kind != inventory.KindWeapon {
		c.EquippedWeapon = ""
	}
	if it, ok := c.FindItem(c.EquippedArmor); !ok || it.Kind != inventory.KindArmor {
		c.EquippedArmor = ""
	}
}

// Summary renders a one-line status, e.g. "Nate (Lvl 2) HP 30/30 AP 7/7".
func (c *Character) Summary() string {
	return fmt.Sprintf("%s (Lvl %d) HP %d/%d AP %d/%d Caps %d",
		c.Name, c.Level, c.CurrentHP, c.MaxHP, c.CurrentAP, c.MaxAP, c.Caps)
}
