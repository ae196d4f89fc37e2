// Package scripting evaluates content-supplied Lua expressions, such as enemy
// level-scaling formulas, inside a locked-down GopherLua state.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps the opcodes a single evaluation may execute.
const DefaultInstructionLimit = 10_000

// opcodeBudget cancels itself once Done has been called limit times.
// GopherLua polls Done once per opcode, so the budget is an exact
// instruction count.
type opcodeBudget struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

// Done spends one unit of budget and returns the cancellation channel.
func (b *opcodeBudget) Done() <-chan struct{} {
	if b.remaining.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

func newOpcodeBudget(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &opcodeBudget{Context: base, cancel: cancel, remaining: rem}, cancel
}

// NewSandboxedState returns an LState with only the base, table, string and
// math libraries, the file and code loading globals removed, and execution
// capped at instLimit opcodes (DefaultInstructionLimit when instLimit <= 0).
//
// Postcondition: the caller owns the state and must Close it.
func NewSandboxedState(instLimit int) *lua.LState {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, _ := newOpcodeBudget(instLimit) //nolint:govet // the budget cancels itself
	L.SetContext(ctx)
	return L
}
