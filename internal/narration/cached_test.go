package narration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
)

type countingNarrator struct {
	calls int
	text  string
	err   error
}

func (n *countingNarrator) Narrate(context.Context, narration.Request) (narration.Response, error) {
	n.calls++
	return narration.Response{Text: n.text}, n.err
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}

func (brokenCache) Set(context.Context, string, string) error { return errors.New("down") }

func TestCachedNarrator_ServesRepeatsFromCache(t *testing.T) {
	inner := &countingNarrator{text: "The door creaks open."}
	n := narration.NewCachedNarrator(inner, narration.NewMemoryCache(time.Minute, 8, clock.NewManual(epoch)), nil)
	req := narration.Request{Input: "open the door"}

	first, err := n.Narrate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	second, err := n.Narrate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, inner.calls)

	_, err = n.Narrate(context.Background(), narration.Request{Input: "close the door"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedNarrator_CacheFailureDoesNotFailTurn(t *testing.T) {
	inner := &countingNarrator{text: "ok"}
	n := narration.NewCachedNarrator(inner, brokenCache{}, nil)
	resp, err := n.Narrate(context.Background(), narration.Request{Input: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestCachedNarrator_ErrorsAreNotCached(t *testing.T) {
	inner := &countingNarrator{err: errors.New("overloaded")}
	cache := narration.NewMemoryCache(time.Minute, 8, nil)
	n := narration.NewCachedNarrator(inner, cache, nil)
	_, err := n.Narrate(context.Background(), narration.Request{Input: "x"})
	assert.Error(t, err)
	assert.Zero(t, cache.Len())
}

func TestCachedNarrator_FreshBypassesLookup(t *testing.T) {
	inner := &countingNarrator{text: "first"}
	cache := narration.NewMemoryCache(time.Minute, 8, nil)
	n := narration.NewCachedNarrator(inner, cache, nil)
	req := narration.Request{Input: "look"}

	_, err := n.Narrate(context.Background(), req)
	require.NoError(t, err)
	inner.text = "second"
	req.Fresh = true
	resp, err := n.Narrate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, "second", resp.Text)

	req.Fresh = false
	resp, err = n.Narrate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, "second", resp.Text)
}
