// Package custom provides a bridge between the Go core and Lua-based link sources.
package custom

import (
	"fmt"

	"github.com/hoopreel/hoopreel/constant"
	"github.com/hoopreel/hoopreel/internal/scraper"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName generates a canonical provider identifier for a given Lua script basename.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadSource executes the script at path and validates that it defines the required functions.
func LoadSource(path string) (source.Source, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state)

	if err := scraper.PreCompileAndLoad(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)

	for _, fn := range []string{constant.SearchHighlightsFn, constant.ResolveMediaFn} {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			state.Close()
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaSource(name, state), nil
}
