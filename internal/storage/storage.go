// Package storage holds what every save backend shares: save-name rules and
// the listing record.
package storage

import (
	"strings"
	"time"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// MaxSaveNameLen bounds a save name in bytes.
const MaxSaveNameLen = 50

// SaveInfo describes one stored save.
type SaveInfo struct {
	Name      string
	Size      int
	UpdatedAt time.Time
}

// ValidateSaveName reports whether name may be used as a save key.
//
// Postcondition: Returns nil iff name is non-empty, at most MaxSaveNameLen
// bytes and made only of ASCII letters, digits, '_' and '-'. Any "..", '/'
// or '\' is rejected.
func ValidateSaveName(name string) error {
	if name == "" {
		return gameerr.Validationf("save name must not be empty")
	}
	if len(name) > MaxSaveNameLen {
		return gameerr.Validationf("save name must be at most %d characters, got %d", MaxSaveNameLen, len(name))
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return gameerr.Validationf("save name %q must not contain path separators or \"..\"", name)
	}
	for _, r := range name {
		if !isSaveNameRune(r) {
			return gameerr.Validationf("save name %q may only contain letters, digits, '_' and '-'", name)
		}
	}
	return nil
}

func isSaveNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}
