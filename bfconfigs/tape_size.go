package bfconfigs

import (
	"github.com/reusee/taibf/cmds"
	"github.com/reusee/taibf/configs"
	"github.com/reusee/taibf/vars"
)

// TapeSize is the number of cells; zero selects the engine default.
type TapeSize int

var _ configs.Configurable = TapeSize(0)

func (TapeSize) ConfigPath() string {
	return "tape_size"
}

var tapeSizeFlag = cmds.Var[int]("-tape-size")

func (Module) TapeSize(
	loader configs.Loader,
) TapeSize {
	configured, _, err := configs.Value[TapeSize](loader)
	if err != nil {
		panic(err)
	}
	return vars.FirstNonZero(
		TapeSize(*tapeSizeFlag),
		configured,
	)
}
