package shell

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("hazards_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// run executes one shell line for a script and pushes the reply, or an
// "ERROR: " string.
func run(L *lua.LState, line string) int {
	sc := getShell(L)
	// exit inside a script only ends the command, not the shell.
	sig := make(chan os.Signal, 1)
	r, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		log.Err(err).Str("line", line).Msg("error-executing-script-line")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

// Exec runs a whole command line: hazards_exec("play 6F CAT").
func Exec(L *lua.LState) int {
	return run(L, L.CheckString(1))
}

// command makes hazards_<name>(args...) run `name args...`.
func command(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		words := []string{name}
		for i := 1; i <= L.GetTop(); i++ {
			words = append(words, L.ToString(i))
		}
		return run(L, shellquote.Join(words...))
	}
}

// State returns the current game as a table, or nil without a game.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	data, err := json.Marshal(snapshot(sc.game))
	if err != nil {
		L.RaiseError("encoding game state: %v", err)
		return 0
	}
	v, err := luajson.Decode(L, data)
	if err != nil {
		L.RaiseError("decoding game state: %v", err)
		return 0
	}
	L.Push(v)
	return 1
}

var scriptCommands = []string{"new", "show", "rack", "play", "preview", "pass", "swap",
	"resign", "hint", "ai", "history", "stats", "level", "set", "export", "analyze"}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("hazards_shell", lsc)
	L.SetGlobal("hazards_exec", L.NewFunction(Exec))
	L.SetGlobal("hazards_state", L.NewFunction(State))
	for _, name := range scriptCommands {
		L.SetGlobal("hazards_"+name, L.NewFunction(command(name)))
	}
	// script arguments, as in lua's own interpreter
	argt := L.NewTable()
	for _, a := range cmd.args[1:] {
		argt.Append(lua.LString(a))
	}
	L.SetGlobal("arg", argt)

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("ran script " + filepath), nil
}
