package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ctclostio/MojaveAdventure/internal/scripting"
)

func TestEvaluator_Int(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	v, err := ev.Int("20 + level * 10", map[string]int{"level": 3})
	require.NoError(t, err)
	assert.Equal(t, 50, v)

	v, err = ev.Int("30 + math.min(level * 10, 70)", map[string]int{"level": 9})
	require.NoError(t, err)
	assert.Equal(t, 100, v)
}

func TestEvaluator_String(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	s, err := ev.String(`(1 + math.floor(level / 3)) .. "d6+" .. level`, map[string]int{"level": 4})
	require.NoError(t, err)
	assert.Equal(t, "2d6+4", s)
}

func TestEvaluator_Errors(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	_, err := ev.Int(`"text"`, nil)
	assert.Error(t, err)
	_, err = ev.Int("level +", map[string]int{"level": 1})
	assert.Error(t, err)
	_, err = ev.String("{}", nil)
	assert.Error(t, err)
	_, err = ev.Int("os.exit(1)", nil)
	assert.Error(t, err)
}

func TestEvaluator_RunawayFormulaStopped(t *testing.T) {
	ev := scripting.NewEvaluator(100)
	_, err := ev.Int("(function() while true do end end)()", nil)
	assert.Error(t, err)
}

func TestEvaluator_LinearFormula_Property(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 50).Draw(rt, "level")
		v, err := ev.Int("10 + level * 3", map[string]int{"level": level})
		require.NoError(rt, err)
		assert.Equal(rt, 10+level*3, v)
	})
}
