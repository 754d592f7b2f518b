package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/sw10emu/synthcore"
)

// runScore interprets a Lua score file against an Engine. The script
// sees three globals: note_on(channel, note, velocity, at_ms),
// note_off(channel, note, at_ms) and program(channel, program) — enough
// to sequence a whole piece without hand-assembling raw MIDI bytes.
// Grounded on embedding gopher-lua as a small sandboxed scripting console
// rather than a general extension API: no standard Lua library is opened
// and only these three functions are registered, so a score script has
// no filesystem or network access.
func runScore(e *sw10.Engine, path string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	L.SetGlobal("note_on", L.NewFunction(func(L *lua.LState) int {
		ch := L.CheckInt(1)
		note := L.CheckInt(2)
		velocity := L.CheckInt(3)
		atMillis := L.OptInt(4, 0)
		e.AddMidiData(uint32(atMillis), []byte{byte(0x90 | (ch & 0x0F)), byte(note), byte(velocity)})
		return 0
	}))

	L.SetGlobal("note_off", L.NewFunction(func(L *lua.LState) int {
		ch := L.CheckInt(1)
		note := L.CheckInt(2)
		atMillis := L.OptInt(3, 0)
		e.AddMidiData(uint32(atMillis), []byte{byte(0x80 | (ch & 0x0F)), byte(note), 0})
		return 0
	}))

	L.SetGlobal("program", L.NewFunction(func(L *lua.LState) int {
		ch := L.CheckInt(1)
		prog := L.CheckInt(2)
		e.AddMidiData(0, []byte{byte(0xC0 | (ch & 0x0F)), byte(prog)})
		return 0
	}))

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("sw10play: running score %s: %w", path, err)
	}
	return nil
}
