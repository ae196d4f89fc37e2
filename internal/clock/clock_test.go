package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
)

func TestManual_Advance(t *testing.T) {
	start := time.Date(2077, 10, 23, 9, 47, 0, 0, time.UTC)
	c := clock.NewManual(start)
	assert.Equal(t, start, c.Now())
	c.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), c.Now())
}

func TestReal_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, clock.New().Now().Location())
}
