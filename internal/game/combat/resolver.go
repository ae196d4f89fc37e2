package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
)

// Roller is the subset of *dice.Roller the resolver needs.
type Roller interface {
	Intn(n int) int
	Roll(expr dice.Expression) dice.RollResult
}

// AttackConfig holds the hit-chance tuning. All values are percentages.
type AttackConfig struct {
	BaseChance int
	MinChance  int
	MaxChance  int
	CritChance int
}

// DefaultAttackConfig returns 30 + skill - AC clamped to [5,95], with rolls
// of 5 or under critical.
func DefaultAttackConfig() AttackConfig {
	return AttackConfig{BaseChance: 30, MinChance: 5, MaxChance: 95, CritChance: 5}
}

// Validate reports every out-of-range value.
func (c AttackConfig) Validate() error {
	var errs []error
	if c.MinChance < 0 || c.MinChance > 100 {
		errs = append(errs, fmt.Errorf("combat: min chance must be in [0,100], got %d", c.MinChance))
	}
	if c.MaxChance < c.MinChance || c.MaxChance > 100 {
		errs = append(errs, fmt.Errorf("combat: max chance must be in [min,100], got %d", c.MaxChance))
	}
	if c.CritChance < 0 || c.CritChance > c.MaxChance {
		errs = append(errs, fmt.Errorf("combat: crit chance must be in [0,max], got %d", c.CritChance))
	}
	return errors.Join(errs...)
}

// Chance returns the clamped percentage to hit.
func (c AttackConfig) Chance(skill, ac int) int {
	return min(max(c.BaseChance+skill-ac, c.MinChance), c.MaxChance)
}

// AttackResult is the outcome of one attack roll.
type AttackResult struct {
	Roll     int
	Chance   int
	Hit      bool
	Critical bool
}

// String renders "hit (23 vs 44%)".
func (r AttackResult) String() string {
	switch {
	case r.Critical:
		return fmt.Sprintf("critical hit (%d vs %d%%)", r.Roll, r.Chance)
	case r.Hit:
		return fmt.Sprintf("hit (%d vs %d%%)", r.Roll, r.Chance)
	}
	return fmt.Sprintf("miss (%d vs %d%%)", r.Roll, r.Chance)
}

// AttackRoll makes a single 1d100 draw against the clamped hit chance.
//
// Postcondition: Hit iff Roll <= Chance. Critical implies Hit.
func AttackRoll(skill, ac int, cfg AttackConfig, src dice.Source) AttackResult {
	chance := cfg.Chance(skill, ac)
	roll := src.Intn(100) + 1
	hit := roll <= chance
	return AttackResult{
		Roll:     roll,
		Chance:   chance,
		Hit:      hit,
		Critical: hit && roll <= cfg.CritChance,
	}
}

// DamageExpression resolves the STR placeholder in formula and parses it.
func DamageExpression(formula string, strength int) (dice.Expression, error) {
	return dice.Parse(dice.ResolveStatModifier(formula, strength).String())
}

// RollDamage rolls expr and scales the total by multiplier on a critical.
//
// Postcondition: Returns >= 0. Multipliers below 1 are treated as 1.
func RollDamage(expr dice.Expression, critical bool, multiplier float64, r Roller) (int, dice.RollResult) {
	res := r.Roll(expr)
	dmg := res.Total()
	if critical {
		dmg = int(math.Floor(float64(dmg) * max(multiplier, 1)))
	}
	return max(dmg, 0), res
}

// CalculateDamage resolves STR in formula, rolls it and applies the critical
// multiplier.
//
// Postcondition: Returns damage >= 0, or a parse error for a bad formula.
func CalculateDamage(formula string, strength int, critical bool, multiplier float64, r Roller) (int, error) {
	expr, err := DamageExpression(formula, strength)
	if err != nil {
		return 0, fmt.Errorf("combat: damage %q: %w", formula, err)
	}
	dmg, _ := RollDamage(expr, critical, multiplier, r)
	return dmg, nil
}
