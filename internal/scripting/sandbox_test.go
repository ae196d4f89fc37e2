package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/ctclostio/MojaveAdventure/internal/scripting"
)

func TestNewSandboxedState_UnsafeLibsAbsent(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()
	for _, name := range []string{"os", "io", "debug", "dofile", "loadfile", "load", "loadstring", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_SafeLibsAvailable(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()
	assert.NoError(t, L.DoString(`
		assert(math.floor(7 / 3) == 2)
		assert(string.upper("vault") == "VAULT")
		assert(#table.concat({"a", "b"}) == 2)
	`))
}

func TestProperty_InstructionLimitAlwaysErrors(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 50).Draw(rt, "limit")
		L := scripting.NewSandboxedState(limit)
		defer L.Close()
		require.Error(rt, L.DoString(`while true do end`))
	})
}
