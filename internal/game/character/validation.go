package character

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// MaxNameLength bounds character names in runes.
const MaxNameLength = 50

// ValidateName accepts letters, digits, spaces, hyphens and apostrophes, with
// no surrounding whitespace.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return gameerr.Validationf("character name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return gameerr.Validationf("character name cannot start or end with whitespace")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return gameerr.Validationf("character name too long (max %d characters, got %d)", MaxNameLength, n)
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return gameerr.Validationf("character name contains invalid character %q", r)
	}
	return nil
}
