package gameerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := gameerr.Validationf("damage must be non-negative, got %d", -3)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.NotErrorIs(t, err, gameerr.ErrPersistence)
	assert.Equal(t, "damage must be non-negative, got -3", err.Error())
}

func TestWrap_PreservesCauseThroughFmtWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("save: %w", gameerr.Wrap(gameerr.KindPersistence, cause, "writing save"))
	assert.ErrorIs(t, err, gameerr.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, gameerr.KindPersistence, gameerr.KindOf(err))
	assert.Contains(t, err.Error(), "writing save: disk full")
}

func TestWrap_NilCause(t *testing.T) {
	assert.NoError(t, gameerr.Wrap(gameerr.KindPersistence, nil, "ignored"))
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, gameerr.Kind(""), gameerr.KindOf(errors.New("plain")))
}
