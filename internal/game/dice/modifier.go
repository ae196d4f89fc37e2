package dice

import (
	"strconv"
	"strings"
)

// StrengthToken is the placeholder substituted by ResolveStatModifier.
const StrengthToken = "STR"

// strengthPivot is the strength at which the STR bonus becomes positive.
const strengthPivot = 5

// Resolved is the result of ResolveStatModifier: either the caller's own
// string, untouched, or a newly built one with STR substituted.
type Resolved struct {
	s     string
	owned bool
}

// String returns the resolved expression.
func (r Resolved) String() string {
	return r.s
}

// Owned reports whether a new string was built.
func (r Resolved) Owned() bool {
	return r.owned
}

// StrengthBonus returns max(strength-5, 0).
func StrengthBonus(strength int) int {
	if b := strength - strengthPivot; b > 0 {
		return b
	}
	return 0
}

// ResolveStatModifier substitutes every "STR" in expr with
// max(strength-5, 0).
//
// Postcondition: when expr has no "STR" token the result shares expr's
// backing data and nothing is allocated.
func ResolveStatModifier(expr string, strength int) Resolved {
	if !strings.Contains(expr, StrengthToken) {
		return Resolved{s: expr}
	}
	return Resolved{
		s:     strings.ReplaceAll(expr, StrengthToken, strconv.Itoa(StrengthBonus(strength))),
		owned: true,
	}
}
