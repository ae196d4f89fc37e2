package dice

import (
	"errors"
	"fmt"
)

// CheckConfig tunes percentile skill checks.
type CheckConfig struct {
	// Sides of the check die; 100 for a percentile roll.
	Sides int
	// DCWeight multiplies the difficulty class before it is subtracted from the skill.
	DCWeight int
	// CritSuccessPercent is the share of lowest faces that always succeed critically.
	CritSuccessPercent int
	// CritFailurePercent is the share of highest faces that always fail critically.
	CritFailurePercent int
}

// DefaultCheckConfig returns a 1d100 roll-under with 5% critical bands.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{Sides: 100, DCWeight: 1, CritSuccessPercent: 5, CritFailurePercent: 5}
}

// Validate reports every invalid field.
func (c CheckConfig) Validate() error {
	var errs []error
	if c.Sides < 2 {
		errs = append(errs, fmt.Errorf("sides must be >= 2, got %d", c.Sides))
	}
	if c.DCWeight < 0 {
		errs = append(errs, fmt.Errorf("dc_weight must be >= 0, got %d", c.DCWeight))
	}
	if c.CritSuccessPercent < 0 || c.CritFailurePercent < 0 || c.CritSuccessPercent+c.CritFailurePercent > 100 {
		errs = append(errs, fmt.Errorf("critical bands must be non-negative and sum to <= 100, got %d/%d",
			c.CritSuccessPercent, c.CritFailurePercent))
	}
	return errors.Join(errs...)
}

// CheckResult is the outcome of a SkillCheck.
type CheckResult struct {
	Skill    int
	DC       int
	Roll     int
	Target   int
	Success  bool
	Critical bool
}

// String renders e.g. "rolled 12 vs 35: success".
func (r CheckResult) String() string {
	outcome := "failure"
	if r.Success {
		outcome = "success"
	}
	if r.Critical {
		outcome = "critical " + outcome
	}
	return fmt.Sprintf("rolled %d vs %d: %s", r.Roll, r.Target, outcome)
}

// SkillCheck rolls one die of cfg.Sides and succeeds when the roll is at or
// under skill - dc*cfg.DCWeight. Rolls inside the low critical band always
// succeed and rolls inside the high band always fail; both are critical.
//
// Precondition: cfg passes Validate; src is non-nil.
func SkillCheck(skill, dc int, cfg CheckConfig, src Source) CheckResult {
	roll := src.Intn(cfg.Sides) + 1
	target := skill - dc*cfg.DCWeight
	critLow := cfg.Sides * cfg.CritSuccessPercent / 100
	critHigh := cfg.Sides - cfg.Sides*cfg.CritFailurePercent/100

	res := CheckResult{Skill: skill, DC: dc, Roll: roll, Target: target}
	switch {
	case roll <= critLow:
		res.Success, res.Critical = true, true
	case roll > critHigh:
		res.Success, res.Critical = false, true
	default:
		res.Success = roll <= target
	}
	return res
}
