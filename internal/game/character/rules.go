package character

import (
	"errors"
	"fmt"
)

// Rules are the tunable constants of character creation and growth.
type Rules struct {
	SpecialTotal     int
	BaseHP           int
	HPPerStrength    int
	HPPerEndurance   int
	HPPerLevel       int // endurance is added on top per level gained
	BaseAP           int
	APAgilityDivisor int
	XPPerLevel       int
	StartingLevel    int
	StartingCaps     int
}

// DefaultRules returns the standard campaign constants.
func DefaultRules() Rules {
	return Rules{
		SpecialTotal:     28,
		BaseHP:           15,
		HPPerStrength:    1,
		HPPerEndurance:   2,
		HPPerLevel:       5,
		BaseAP:           5,
		APAgilityDivisor: 2,
		XPPerLevel:       1000,
		StartingLevel:    1,
		StartingCaps:     500,
	}
}

// Validate reports every invalid constant.
func (r Rules) Validate() error {
	var errs []error
	if r.SpecialTotal < 7*MinStat || r.SpecialTotal > 7*MaxStat {
		errs = append(errs, fmt.Errorf("special_total must be in [%d,%d], got %d", 7*MinStat, 7*MaxStat, r.SpecialTotal))
	}
	if r.BaseHP < 1 {
		errs = append(errs, fmt.Errorf("base_hp must be >= 1, got %d", r.BaseHP))
	}
	if r.HPPerStrength < 0 || r.HPPerEndurance < 0 || r.HPPerLevel < 0 {
		errs = append(errs, errors.New("hp growth constants must be >= 0"))
	}
	if r.BaseAP < 1 {
		errs = append(errs, fmt.Errorf("base_ap must be >= 1, got %d", r.BaseAP))
	}
	if r.APAgilityDivisor < 1 {
		errs = append(errs, fmt.Errorf("ap_agility_divisor must be >= 1, got %d", r.APAgilityDivisor))
	}
	if r.XPPerLevel < 1 {
		errs = append(errs, fmt.Errorf("xp_per_level must be >= 1, got %d", r.XPPerLevel))
	}
	if r.StartingLevel < 1 {
		errs = append(errs, fmt.Errorf("starting_level must be >= 1, got %d", r.StartingLevel))
	}
	if r.StartingCaps < 0 {
		errs = append(errs, fmt.Errorf("starting_caps must be >= 0, got %d", r.StartingCaps))
	}
	return errors.Join(errs...)
}

// MaxHP returns the hit point cap for s at level.
func (r Rules) MaxHP(s Special, level int) int {
	hp := r.BaseHP + s.Strength*r.HPPerStrength + s.Endurance*r.HPPerEndurance
	if level > 1 {
		hp += (level - 1) * (r.HPPerLevel + s.Endurance)
	}
	return hp
}

// MaxAP returns the action point cap for s.
func (r Rules) MaxAP(s Special) int {
	return r.BaseAP + s.Agility/r.APAgilityDivisor
}

// LevelFor returns the level earned by xp experience.
func (r Rules) LevelFor(xp int) int {
	return 1 + xp/r.XPPerLevel
}
