package debugs

import (
	"context"
	"io"
	"maps"
	"slices"

	"github.com/reusee/taibf/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL over globals, returning when the REPL input ends.
type Tap func(ctx context.Context, what string, globals map[string]any)

// TapInput, if not nil, is run as a script instead of the interactive REPL on stdin.
type TapInput io.Reader

func (Module) TapInput() TapInput {
	return nil
}

func (Module) Tap(
	logger logs.Logger,
	input TapInput,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for _, name := range names {
			mappings[name] = toStarlarkValue(globals[name])
		}
		mappings.Freeze()

		thread := &starlark.Thread{
			Name: what,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, msg)
			},
		}
		if input != nil {
			runScript(ctx, logger, thread, input, mappings)
			return
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}

func runScript(ctx context.Context, logger logs.Logger, thread *starlark.Thread, input io.Reader, globals starlark.StringDict) {
	src, err := io.ReadAll(input)
	if err != nil {
		logger.ErrorContext(ctx, "read tap input", "error", err)
		return
	}
	_, err = starlark.ExecFileOptions(&syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}, thread, thread.Name, src, globals)
	if err != nil {
		logger.ErrorContext(ctx, "tap script", "error", err)
	}
}
