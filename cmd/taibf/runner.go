package main

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/taibf/bfvm"
	"github.com/reusee/taibf/logs"
	"github.com/reusee/taibf/sources"
)

type Runner struct {
	Engine  *bfvm.Engine
	Output  *lineWriter
	Logger  logs.Logger
	NewSpan logs.NewSpan
	Dump    io.Writer // if not nil, the engine state is written here after each program
}

// Run executes sources one after another on the same engine.
func (r Runner) Run(ctx context.Context, srcs []sources.Source) error {
	for i, src := range srcs {
		ctx, _ := r.NewSpan(ctx, "",
			"program", src.Name,
			"digest", src.Digest,
		)

		r.Engine.Load(src.Text)
		runErr := r.Engine.Run()

		if runErr == nil && i < len(srcs)-1 {
			if err := r.Output.EndLine(); err != nil {
				return logs.WrapSpan(ctx, err)
			}
		}
		if err := r.Output.Flush(); err != nil {
			return logs.WrapSpan(ctx, err)
		}

		if runErr != nil {
			return logs.WrapSpan(ctx, fmt.Errorf("%s: %w", src.Name, runErr))
		}
		if r.Dump != nil {
			r.Engine.Dump(r.Dump)
		}
		r.Logger.InfoContext(ctx, "program finished",
			"executed", r.Engine.Executed(),
		)
	}
	return nil
}
