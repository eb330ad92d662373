package bfconfigs

import (
	"github.com/reusee/taibf/cmds"
	"github.com/reusee/taibf/configs"
)

// DebugTap enables the '#' instruction.
type DebugTap bool

var _ configs.Configurable = DebugTap(false)

func (DebugTap) ConfigPath() string {
	return "debug"
}

var debugFlag = cmds.Switch("-debug")

func (Module) DebugTap(
	loader configs.Loader,
) DebugTap {
	if *debugFlag {
		return true
	}
	configured, _, err := configs.Value[DebugTap](loader)
	if err != nil {
		panic(err)
	}
	return configured
}
