package bfvm

import (
	"fmt"
	"io"
)

const (
	dumpRowCells = 16
	dumpRows     = 4
	tapWindow    = 8
)

// Dump writes the pointers, the loop stack and the tape rows around the data pointer.
func (e *Engine) Dump(w io.Writer) {
	fmt.Fprintf(w, "phase: %v\n", e.phase)
	fmt.Fprintf(w, "ip: %d/%d", e.ip, len(e.program))
	if e.ip < len(e.program) {
		fmt.Fprintf(w, " (%q)", e.program[e.ip])
	}
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "dp: %d/%d\n", e.dp, len(e.tape))
	fmt.Fprintf(w, "loops: %v\n", e.loops)
	fmt.Fprintf(w, "executed: %d\n", e.steps)

	fmt.Fprintln(w, "tape trace:")
	start := (e.dp/dumpRowCells - dumpRows/2) * dumpRowCells
	start = max(0, min(start, len(e.tape)-dumpRows*dumpRowCells))
	end := min(len(e.tape), start+dumpRows*dumpRowCells)
	for row := start; row < end; row += dumpRowCells {
		fmt.Fprintf(w, "%05d:", row)
		for i := row; i < row+dumpRowCells && i < end; i++ {
			if i == e.dp {
				fmt.Fprintf(w, "[%02x]", e.tape[i])
			} else {
				fmt.Fprintf(w, " %02x ", e.tape[i])
			}
		}
		fmt.Fprintln(w, "")
	}
}

// Globals is the engine state as plain values, for debuggers.
func (e *Engine) Globals() map[string]any {
	lo := max(0, e.dp-tapWindow)
	hi := min(len(e.tape), e.dp+tapWindow+1)
	window := make([]int, 0, hi-lo)
	for _, cell := range e.tape[lo:hi] {
		window = append(window, int(cell))
	}
	loops := make([]int, len(e.loops))
	copy(loops, e.loops)
	return map[string]any{
		"program":      e.program,
		"ip":           e.ip,
		"dp":           e.dp,
		"cell":         int(e.tape[e.dp]),
		"depth":        len(e.loops),
		"loops":        loops,
		"window":       window,
		"window_start": lo,
		"executed":     e.steps,
		"phase":        e.phase.String(),
	}
}
