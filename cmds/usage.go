package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	// aliases share the same *Command, print each once under its sorted names
	names := make(map[*Command][]string)
	var order []*Command
	for name, command := range p.commands {
		if _, ok := names[command]; !ok {
			order = append(order, command)
		}
		names[command] = append(names[command], name)
	}
	for _, command := range order {
		slices.Sort(names[command])
	}
	slices.SortFunc(order, func(a, b *Command) int {
		return strings.Compare(names[a][0], names[b][0])
	})

	for _, command := range order {
		line := strings.Join(names[command], ", ")
		for i, n := 0, command.Func.Type().NumIn(); i < n; i++ {
			line += fmt.Sprintf(" <%v>", command.Func.Type().In(i))
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
	}
}
