// Package scraper compiles and maintains the Lua scripts behind custom link sources.
package scraper

import (
	"sync"

	"github.com/hoopreel/hoopreel/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

type compiled struct {
	modTime int64
	proto   *lua.FunctionProto
}

// PreCompileAndLoad runs the script at path in L. Compiled prototypes are reused
// until the file changes on disk.
func PreCompileAndLoad(L *lua.LState, path string) error {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return err
	}

	if cached, ok := bytecodeCache.Load(path); ok && cached.(compiled).modTime == info.ModTime().UnixNano() {
		L.Push(L.NewFunctionFromProto(cached.(compiled).proto))
		return L.PCall(0, lua.MultRet, nil)
	}

	file, err := filesystem.API().Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, path)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return err
	}

	bytecodeCache.Store(path, compiled{modTime: info.ModTime().UnixNano(), proto: proto})

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

// Forget drops the compiled prototype for path.
func Forget(path string) {
	bytecodeCache.Delete(path)
}
