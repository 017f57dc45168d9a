// script_process.go - Lua-scripted process invoked on every scheduler pass

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/zotley/rtcore"
)

// defaultScript is run once at startup and must leave a global on_event(line)
// function in place; it demonstrates that a process's callback + opaque
// argument can be a fully dynamic scripted handler, composing cleanly with
// the core's func(any) callback model. There is no equivalent in the
// original firmware, which only ever dispatches C function pointers.
const defaultScript = `
function on_event(line)
  return "script saw: " .. line
end
`

// scriptProcess wraps a Lua VM whose on_event function is invoked once per
// posted log-shaped event; its result is appended back to the shared log.
type scriptProcess struct {
	vm   *lua.LState
	logs *logState
}

func newScriptProcess(logs *logState) (*scriptProcess, error) {
	vm := lua.NewState()
	if err := vm.DoString(defaultScript); err != nil {
		vm.Close()
		return nil, fmt.Errorf("script: loading default chunk: %w", err)
	}
	return &scriptProcess{vm: vm, logs: logs}, nil
}

func (s *scriptProcess) run(arg any) {
	rt := arg.(*rtcore.Runtime)
	var buf [logEventSize]byte
	for rt.GetEvent(buf[:]) {
		line := decodeLogEvent(buf[:])

		fn := s.vm.GetGlobal("on_event")
		if fn.Type() != lua.LTFunction {
			continue
		}
		if err := s.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(line)); err != nil {
			s.logs.append(fmt.Sprintf("script: error: %v", err))
			continue
		}
		ret := s.vm.Get(-1)
		s.vm.Pop(1)
		s.logs.append(ret.String())
	}
}
