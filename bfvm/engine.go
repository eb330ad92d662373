// Package bfvm executes eight-instruction tape programs.
//
// Loops are resolved lazily: a '[' on a zero cell scans forward for its
// matching ']', a ']' on a nonzero cell jumps back to the position saved when
// its '[' was entered. No jump table is built.
package bfvm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/reusee/taibf/logs"
)

const DefaultTapeSize = 30000

type Phase uint8

const (
	PhaseLoaded Phase = iota
	PhaseRunning
	PhaseHalted
)

func (p Phase) String() string {
	switch p {
	case PhaseLoaded:
		return "loaded"
	case PhaseRunning:
		return "running"
	case PhaseHalted:
		return "halted"
	}
	return "unknown"
}

// TapFunc receives the engine state when a '#' is executed.
type TapFunc func(what string, globals map[string]any)

type Options struct {
	TapeSize int           // if zero, DefaultTapeSize
	Input    io.ByteReader // if nil, input is always exhausted
	Output   io.ByteWriter // if nil, output is discarded
	EOF      EOFPolicy
	Tap      TapFunc // if nil, '#' is a no-op
	Logger   logs.Logger
}

type Engine struct {
	program string
	ip      int
	tape    []Cell
	dp      int
	loops   []int
	phase   Phase
	active  bool
	steps   uint64

	input  io.ByteReader
	output io.ByteWriter
	eof    EOFPolicy
	tap    TapFunc
	logger logs.Logger
}

func NewEngine(options Options) *Engine {
	size := options.TapeSize
	if size <= 0 {
		size = DefaultTapeSize
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		tape:   make([]Cell, size),
		loops:  make([]int, 0, 64),
		input:  options.Input,
		output: options.Output,
		eof:    options.EOF,
		tap:    options.Tap,
		logger: logger,
	}
}

// Load replaces the program and resets the tape, both pointers and the loop stack.
func (e *Engine) Load(program string) {
	e.program = program
	e.ip = 0
	clear(e.tape)
	e.dp = 0
	e.loops = e.loops[:0]
	e.phase = PhaseLoaded
	e.steps = 0
	e.logger.Debug("load program",
		"size", len(program),
	)
}

// Run executes the loaded program until it ends or fails.
// Any error halts the engine until the next Load.
func (e *Engine) Run() error {
	for _, err := range e.Steps {
		if err != nil {
			return err
		}
	}
	return nil
}

type Step struct {
	Pos     int // position of the executed instruction
	Op      Op
	Pointer int
	Value   Cell
	Depth   int
}

// Steps executes one instruction per iteration.
// Stopping the iteration early leaves the engine running; the next Steps or Run resumes it.
func (e *Engine) Steps(yield func(Step, error) bool) {
	if e.active {
		yield(Step{}, ErrRunning)
		return
	}
	if e.phase == PhaseHalted {
		yield(Step{}, ErrHalted)
		return
	}
	e.phase = PhaseRunning
	e.active = true
	defer func() {
		e.active = false
	}()

	for e.ip < len(e.program) {
		pos := e.ip
		op := Decode(e.program[pos])
		if err := e.exec(op); err != nil {
			e.phase = PhaseHalted
			e.logger.Debug("halted on error",
				"pos", pos,
				"op", op,
				"steps", e.steps,
				"error", err,
			)
			yield(e.step(pos, op), err)
			return
		}
		e.ip++
		e.steps++
		if !yield(e.step(pos, op), nil) {
			return
		}
	}

	if n := len(e.loops); n > 0 {
		// a '[' entered on a nonzero cell whose ']' never came
		e.phase = PhaseHalted
		open := e.loops[n-1]
		yield(e.step(open, OpLoop), fmt.Errorf("%w: unmatched '[' at %d", ErrMalformedProgram, open))
		return
	}

	e.phase = PhaseHalted
	e.logger.Debug("program finished",
		"steps", e.steps,
	)
}

func (e *Engine) step(pos int, op Op) Step {
	return Step{
		Pos:     pos,
		Op:      op,
		Pointer: e.dp,
		Value:   e.tape[e.dp],
		Depth:   len(e.loops),
	}
}

func (e *Engine) exec(op Op) error {
	switch op {

	case OpRight:
		if e.dp+1 >= len(e.tape) {
			return fmt.Errorf("%w: '>' at %d moves past cell %d", ErrOutOfRange, e.ip, len(e.tape)-1)
		}
		e.dp++

	case OpLeft:
		if e.dp == 0 {
			return fmt.Errorf("%w: '<' at %d moves below cell 0", ErrOutOfRange, e.ip)
		}
		e.dp--

	case OpInc:
		e.tape[e.dp] = e.tape[e.dp].Inc()

	case OpDec:
		e.tape[e.dp] = e.tape[e.dp].Dec()

	case OpOut:
		if e.output == nil {
			break
		}
		if err := e.output.WriteByte(byte(e.tape[e.dp])); err != nil {
			return fmt.Errorf("write output at %d: %w", e.ip, err)
		}

	case OpIn:
		if e.input == nil {
			e.tape[e.dp] = e.eof.apply(e.tape[e.dp])
			break
		}
		b, err := e.input.ReadByte()
		if errors.Is(err, io.EOF) {
			e.tape[e.dp] = e.eof.apply(e.tape[e.dp])
			break
		} else if err != nil {
			return fmt.Errorf("read input at %d: %w", e.ip, err)
		}
		e.tape[e.dp] = Cell(b)

	case OpLoop:
		if e.tape[e.dp] != 0 {
			e.loops = append(e.loops, e.ip)
			break
		}
		match, err := e.matchForward(e.ip)
		if err != nil {
			return err
		}
		e.ip = match

	case OpEnd:
		if len(e.loops) == 0 {
			return fmt.Errorf("%w: unmatched ']' at %d", ErrMalformedProgram, e.ip)
		}
		if e.tape[e.dp] != 0 {
			// the caller advances past the '[' into the loop body
			e.ip = e.loops[len(e.loops)-1]
			break
		}
		e.loops = e.loops[:len(e.loops)-1]

	case OpTap:
		if e.tap != nil {
			e.tap(fmt.Sprintf("tap at %d", e.ip), e.Globals())
		}

	}
	return nil
}

// matchForward returns the position of the ']' matching the '[' at open.
func (e *Engine) matchForward(open int) (int, error) {
	depth := 1
	for pos := open + 1; pos < len(e.program); pos++ {
		switch e.program[pos] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return pos, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unmatched '[' at %d", ErrMalformedProgram, open)
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// Depth is the size of the loop-return stack, the current loop nesting.
func (e *Engine) Depth() int {
	return len(e.loops)
}

func (e *Engine) Pointer() int {
	return e.dp
}

func (e *Engine) Position() int {
	return e.ip
}

func (e *Engine) TapeSize() int {
	return len(e.tape)
}

// Cell returns the value of cell i and false if i is off the tape.
func (e *Engine) Cell(i int) (Cell, bool) {
	if i < 0 || i >= len(e.tape) {
		return 0, false
	}
	return e.tape[i], true
}

// Executed is the number of instructions executed since the last Load.
func (e *Engine) Executed() uint64 {
	return e.steps
}
