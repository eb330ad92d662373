package bfvm

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/dscope"
	"github.com/reusee/taibf/bfconfigs"
	"github.com/reusee/taibf/debugs"
	"github.com/reusee/taibf/logs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs bfconfigs.Module
	Debugs  debugs.Module
}

type NewEngineFunc func(input io.ByteReader, output io.ByteWriter) (*Engine, error)

func (Module) NewEngine(
	logger logs.Logger,
	tapeSize bfconfigs.TapeSize,
	eof bfconfigs.EOFPolicy,
	debugTap bfconfigs.DebugTap,
	tap debugs.Tap,
) NewEngineFunc {
	return func(input io.ByteReader, output io.ByteWriter) (*Engine, error) {
		if tapeSize < 0 {
			return nil, fmt.Errorf("invalid tape size: %d", tapeSize)
		}
		policy, err := ParseEOFPolicy(string(eof))
		if err != nil {
			return nil, err
		}

		var tapFunc TapFunc
		if debugTap {
			tapFunc = func(what string, globals map[string]any) {
				tap(context.Background(), what, globals)
			}
		}

		size := int(tapeSize)
		if size == 0 {
			size = DefaultTapeSize
		}
		logger.Debug("new engine",
			"tape_size", size,
			"eof", policy,
			"debug", bool(debugTap),
		)

		return NewEngine(Options{
			TapeSize: size,
			Input:    input,
			Output:   output,
			EOF:      policy,
			Tap:      tapFunc,
			Logger:   logger,
		}), nil
	}
}
