package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taibf/bfvm"
	"github.com/reusee/taibf/nets"
)

type Module struct {
	dscope.Module
	BFVM bfvm.Module
	Nets nets.Module
}
