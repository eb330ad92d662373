package bfconfigs

import (
	"github.com/reusee/taibf/cmds"
	"github.com/reusee/taibf/configs"
	"github.com/reusee/taibf/vars"
)

// EOFPolicy names what ',' stores at end of input: "minus-one", "zero" or "unchanged".
type EOFPolicy string

var _ configs.Configurable = EOFPolicy("")

func (EOFPolicy) ConfigPath() string {
	return "eof"
}

var eofFlag = cmds.Var[string]("-eof")

func (Module) EOFPolicy(
	loader configs.Loader,
) EOFPolicy {
	configured, _, err := configs.Value[EOFPolicy](loader)
	if err != nil {
		panic(err)
	}
	return vars.FirstNonZero(
		EOFPolicy(*eofFlag),
		configured,
	)
}
