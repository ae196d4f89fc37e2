// Package character models the player character: SPECIAL attributes, the
// skills derived from them, HP/AP pools, leveling and the carried inventory.
package character

import (
	"fmt"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Attribute names one of the seven SPECIAL attributes.
type Attribute string

// SPECIAL attributes.
const (
	Strength     Attribute = "strength"
	Perception   Attribute = "perception"
	Endurance    Attribute = "endurance"
	Charisma     Attribute = "charisma"
	Intelligence Attribute = "intelligence"
	Agility      Attribute = "agility"
	Luck         Attribute = "luck"
)

// Attributes lists the SPECIAL attributes in canonical order.
var Attributes = []Attribute{Strength, Perception, Endurance, Charisma, Intelligence, Agility, Luck}

// Attribute bounds.
const (
	MinStat = 1
	MaxStat = 10
)

// ParseAttribute resolves a full name or the three-letter abbreviation.
func ParseAttribute(s string) (Attribute, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Attributes {
		if s == string(a) || s == a.Abbrev() {
			return a, true
		}
	}
	return "", false
}

// Abbrev returns the short label, e.g. "str".
func (a Attribute) Abbrev() string {
	if len(a) < 3 {
		return string(a)
	}
	return string(a[:3])
}

// Special holds the seven attribute scores.
//
// Invariant: every score is in [MinStat, MaxStat] once validated.
type Special struct {
	Strength     int `json:"strength"`
	Perception   int `json:"perception"`
	Endurance    int `json:"endurance"`
	Charisma     int `json:"charisma"`
	Intelligence int `json:"intelligence"`
	Agility      int `json:"agility"`
	Luck         int `json:"luck"`
}

// Uniform returns a Special with every attribute set to v.
func Uniform(v int) Special {
	return Special{v, v, v, v, v, v, v}
}

// Get returns the score for a.
func (s Special) Get(a Attribute) int {
	switch a {
	case Strength:
		return s.Strength
	case Perception:
		return s.Perception
	case Endurance:
		return s.Endurance
	case Charisma:
		return s.Charisma
	case Intelligence:
		return s.Intelligence
	case Agility:
		return s.Agility
	case Luck:
		return s.Luck
	}
	return 0
}

// With returns a copy of s with a set to v.
func (s Special) With(a Attribute, v int) Special {
	switch a {
	case Strength:
		s.Strength = v
	case Perception:
		s.Perception = v
	case Endurance:
		s.Endurance = v
	case Charisma:
		s.Charisma = v
	case Intelligence:
		s.Intelligence = v
	case Agility:
		s.Agility = v
	case Luck:
		s.Luck = v
	}
	return s
}

// Total returns the sum of all seven scores.
func (s Special) Total() int {
	total := 0
	for _, a := range Attributes {
		total += s.Get(a)
	}
	return total
}

// Validate checks every score lies in [MinStat, MaxStat].
func (s Special) Validate() error {
	for _, a := range Attributes {
		if err := ValidateStat(a, s.Get(a)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTotal checks the scores sum to total.
func (s Special) ValidateTotal(total int) error {
	if got := s.Total(); got != total {
		return gameerr.Validationf("SPECIAL points must total %d, got %d", total, got)
	}
	return nil
}

// ValidateStat checks a single score.
func ValidateStat(a Attribute, v int) error {
	if v < MinStat || v > MaxStat {
		return gameerr.Validationf("%s must be between %d and %d, got %d", a, MinStat, MaxStat, v)
	}
	return nil
}

// String renders "S5 P5 E5 C5 I5 A5 L5".
func (s Special) String() string {
	return fmt.Sprintf("S%d P%d E%d C%d I%d A%d L%d",
		s.Strength, s.Perception, s.Endurance, s.Charisma, s.Intelligence, s.Agility, s.Luck)
}
