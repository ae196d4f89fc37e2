// Package combat implements the turn-based encounter engine: the enemy
// roster, attack and damage resolution, and AP-gated rounds.
package combat

import (
	"fmt"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Enemy is one hostile combatant spawned from an archetype.
//
// Invariant: CurrentHP <= MaxHP. CurrentHP <= 0 means dead.
type Enemy struct {
	Name       string `json:"name"`
	Archetype  string `json:"archetype,omitempty"`
	Level      int    `json:"level"`
	MaxHP      int    `json:"max_hp"`
	CurrentHP  int    `json:"current_hp"`
	ArmorClass int    `json:"armor_class"`
	Damage     string `json:"damage"`
	AP         int    `json:"ap"`
	XPReward   int    `json:"xp_reward"`
	Skill      int    `json:"skill"`
	Strength   int    `json:"strength"`

	// Loot rolled at spawn time, handed over when the enemy dies.
	LootCaps  int      `json:"loot_caps,omitempty"`
	LootItems []string `json:"loot_items,omitempty"`
}

// IsAlive reports whether CurrentHP > 0.
func (e *Enemy) IsAlive() bool {
	return e.CurrentHP > 0
}

// TakeDamage lowers HP by amount, flooring at zero.
//
// Precondition: amount >= 0; a negative amount is rejected and changes nothing.
func (e *Enemy) TakeDamage(amount int) error {
	if amount < 0 {
		return gameerr.Validationf("damage must be non-negative, got %d", amount)
	}
	e.CurrentHP = max(e.CurrentHP-amount, 0)
	return nil
}

// Status renders "Raider (Level 1) HP 12/30".
func (e *Enemy) Status() string {
	return fmt.Sprintf("%s HP %d/%d", e.Name, e.CurrentHP, e.MaxHP)
}
