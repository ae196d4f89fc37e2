package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Limits applied by Parse so a hostile expression cannot allocate unbounded dice.
const (
	MaxDice  = 100
	MaxSides = 1000
)

// ParseError reports a malformed dice expression and the token that broke it.
type ParseError struct {
	Expr   string
	Token  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("dice: cannot parse %q: %s (token %q)", e.Expr, e.Reason, e.Token)
}

// Is lets errors.Is(err, gameerr.ErrParse) match dice parse failures.
func (e *ParseError) Is(target error) bool {
	return target == gameerr.ErrParse
}

// Expression is a parsed "<N>d<S>[+|-<M>]" expression.
//
// Invariant: 1 <= Count <= MaxDice; 2 <= Sides <= MaxSides.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// Min returns the lowest total the expression can produce.
func (e Expression) Min() int {
	return e.Count + e.Modifier
}

// Max returns the highest total the expression can produce.
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Modifier
}

// String returns the canonical notation, e.g. "2d6+3".
func (e Expression) String() string {
	if e.Modifier == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d%+d", e.Count, e.Sides, e.Modifier)
}

// Parse parses a dice expression. Accepted forms: "d20", "2d6", "2d6+3",
// "4d8-2". Whitespace is ignored and the 'd' is case-insensitive.
//
// Postcondition: Returns a valid Expression or a *ParseError naming the
// offending token. Parse never substitutes defaults for malformed input.
func Parse(expr string) (Expression, error) {
	s := strings.Join(strings.Fields(expr), "")
	if s == "" {
		return Expression{}, &ParseError{Expr: expr, Reason: "empty expression"}
	}

	dIdx := strings.IndexAny(s, "dD")
	if dIdx < 0 {
		return Expression{}, &ParseError{Expr: expr, Token: s, Reason: "missing 'd'"}
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 || n > MaxDice {
			return Expression{}, &ParseError{
				Expr: expr, Token: countStr,
				Reason: fmt.Sprintf("die count must be an integer in [1,%d]", MaxDice),
			}
		}
		count = n
	}

	rest := s[dIdx+1:]
	sidesStr, modStr := rest, ""
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 2 || sides > MaxSides {
		tok := sidesStr
		if tok == "" {
			tok = rest
		}
		return Expression{}, &ParseError{
			Expr: expr, Token: tok,
			Reason: fmt.Sprintf("die sides must be an integer in [2,%d]", MaxSides),
		}
	}

	modifier := 0
	if modStr != "" {
		digits := modStr[1:]
		if digits == "" {
			return Expression{}, &ParseError{Expr: expr, Token: modStr, Reason: "missing modifier value"}
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return Expression{}, &ParseError{Expr: expr, Token: digits, Reason: "modifier must be an integer"}
			}
		}
		modifier, err = strconv.Atoi(digits)
		if err != nil {
			return Expression{}, &ParseError{Expr: expr, Token: digits, Reason: "modifier out of range"}
		}
		if modStr[0] == '-' {
			modifier = -modifier
		}
	}

	return Expression{
		Raw:      expr,
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
	}, nil
}

// MustParse parses expr and panics on error. For package-level constants only.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err.Error())
	}
	return e
}
