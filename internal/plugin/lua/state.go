package lua

import (
	"context"
	"log/slog"

	lua "github.com/yuin/gopher-lua"
)

// newState creates a sandboxed Lua state bound to ctx.
func newState(ctx context.Context, logger *slog.Logger) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	installHostAPI(L, logger)
	L.SetContext(ctx)
	return L
}

// openSafeLibraries opens only Lua standard libraries without host access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Base opens loaders that can read files.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installHostAPI exposes the tactile table to scripts.
func installHostAPI(L *lua.LState, logger *slog.Logger) {
	mod := L.NewTable()
	L.SetField(mod, "log", L.NewFunction(func(L *lua.LState) int {
		logger.Info(L.CheckString(1))
		return 0
	}))
	L.SetGlobal("tactile", mod)
}
