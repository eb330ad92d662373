// Package nets provides the HTTP client used to fetch remote programs.
package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taibf/bfconfigs"
)

type Module struct {
	dscope.Module
	Configs bfconfigs.Module
}
