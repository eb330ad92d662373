package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/taibf/bfvm"
	"github.com/reusee/taibf/cmds"
	"github.com/reusee/taibf/logs"
	"github.com/reusee/taibf/modes"
	"github.com/reusee/taibf/nets"
	"github.com/reusee/taibf/sources"
)

// pendingSource resolves one program once the scope is built.
type pendingSource func(ctx context.Context, client nets.HTTPClient) (sources.Source, error)

var programs []pendingSource

func init() {
	cmds.Define("-file", cmds.Func(func(path string) {
		programs = append(programs, func(context.Context, nets.HTTPClient) (sources.Source, error) {
			return sources.FromFile(path)
		})
	}).Desc("run a program file, - reads stdin, zstd files are decompressed"))

	cmds.Define("-url", cmds.Func(func(url string) {
		programs = append(programs, func(ctx context.Context, client nets.HTTPClient) (sources.Source, error) {
			return sources.FromURL(ctx, client, url)
		})
	}).Desc("run a program fetched over http"))

	cmds.Define("-e", cmds.Func(func(text string) {
		src := sources.Inline(text)
		programs = append(programs, func(context.Context, nets.HTTPClient) (sources.Source, error) {
			return src, nil
		})
	}).Desc("run program text"))

	cmds.Define("-example", cmds.Func(func(name string) error {
		src, err := sources.Example(name)
		if err != nil {
			return err
		}
		programs = append(programs, func(context.Context, nets.HTTPClient) (sources.Source, error) {
			return src, nil
		})
		return nil
	}).Desc("run a builtin example program"))
}

func resolve(ctx context.Context, client nets.HTTPClient, pending []pendingSource) ([]sources.Source, error) {
	srcs := make([]sources.Source, 0, len(pending))
	for _, fn := range pending {
		src, err := fn(ctx, client)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}

var (
	listExamples = cmds.Switch("-examples")
	dumpState    = cmds.Switch("-dump")
)

func main() {
	cmds.Execute(os.Args[1:])

	if *listExamples {
		for _, name := range sources.Examples() {
			fmt.Println(name)
		}
		return
	}

	if len(programs) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-file path] [-url url] [-e program] [-example name] ...\n\n", os.Args[0])
		cmds.GlobalExecutor.WriteUsage(os.Stderr)
		os.Exit(2)
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		newEngine bfvm.NewEngineFunc,
		client nets.HTTPClient,
	) {
		ctx := context.Background()
		srcs, err := resolve(ctx, client, programs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		output := newLineWriter(os.Stdout)
		engine, err := newEngine(bufio.NewReader(os.Stdin), output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		var dump io.Writer
		if *dumpState {
			dump = os.Stderr
		}

		runner := Runner{
			Engine:  engine,
			Output:  output,
			Logger:  logger,
			NewSpan: newSpan,
			Dump:    dump,
		}
		if err := runner.Run(ctx, srcs); err != nil {
			fmt.Fprintf(os.Stderr, "\nfatal: %v\n\n", err)
			engine.Dump(os.Stderr)
			os.Exit(1)
		}
	})
}
