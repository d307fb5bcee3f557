package custom

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// luaSource adapts a Lua script to source.Source.
// An LState is not safe for concurrent use, so calls are serialized.
type luaSource struct {
	name  string
	state *lua.LState
	mu    sync.Mutex
}

func newLuaSource(name string, state *lua.LState) *luaSource {
	return &luaSource{name: name, state: state}
}

// Name returns the provider name.
func (s *luaSource) Name() string {
	return s.name
}

// ID returns the provider ID.
func (s *luaSource) ID() string {
	return IDfromName(s.name)
}

func (s *luaSource) defines(fn string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.GetGlobal(fn).Type() == lua.LTFunction
}

// call executes a global Lua function in protected mode and checks the type of its single result.
func (s *luaSource) call(ctx context.Context, fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	luaFn := s.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	retval := s.state.Get(-1)
	s.state.Pop(1)

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
