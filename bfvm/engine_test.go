package bfvm

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func run(t *testing.T, program string, input string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	e := NewEngine(Options{
		Input:  strings.NewReader(input),
		Output: out,
	})
	e.Load(program)
	err := e.Run()
	return out.String(), err
}

func TestSingleCharacter(t *testing.T) {
	out, err := run(t, "++++++++++ ++++++++++ ++++++++++ ++++++++++ ++++++++++ ++++++++++ +++++ .", "")
	if err != nil {
		t.Fatal(err)
	}
	if out != "A" {
		t.Fatalf("got %q", out)
	}
}

func TestMultiplyLoop(t *testing.T) {
	out, err := run(t, "++++++ [ > ++++++++++ < - ] > +++++ .", "")
	if err != nil {
		t.Fatal(err)
	}
	if out != "A" {
		t.Fatalf("got %q", out)
	}
}

func TestReverseString(t *testing.T) {
	for input, expected := range map[string]string{
		"abc\n":   "cba",
		"\n":      "",
		"hello\n": "olleh",
		"ab\ncd":  "ba",
	} {
		out, err := run(t, "+[->,----------]<[+++++++++++.<]", input)
		if err != nil {
			t.Fatal(err)
		}
		if out != expected {
			t.Fatalf("%q: got %q", input, out)
		}
	}
}

func TestMalformed(t *testing.T) {
	for _, program := range []string{
		"[+",
		"+]",
		"]",
		"+[",
		"+[[-]",
		"[[]",
		"+[-]]",
	} {
		_, err := run(t, program, "")
		if !errors.Is(err, ErrMalformedProgram) {
			t.Fatalf("%q: got %v", program, err)
		}
	}
}

func TestUnmatchedOpenDoesNotRunBody(t *testing.T) {
	out, err := run(t, "[.+", "")
	if !errors.Is(err, ErrMalformedProgram) {
		t.Fatalf("got %v", err)
	}
	if out != "" {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(err.Error(), "unmatched '[' at 0") {
		t.Fatalf("got %v", err)
	}
}

func TestOutOfRange(t *testing.T) {
	_, err := run(t, "<", "")
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v", err)
	}

	e := NewEngine(Options{
		TapeSize: 4,
	})
	e.Load(">>>")
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if e.Pointer() != 3 {
		t.Fatalf("got %v", e.Pointer())
	}

	e.Load(">>>>")
	err = e.Run()
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v", err)
	}
	if e.Pointer() != 3 {
		t.Fatalf("got %v", e.Pointer())
	}
	if e.Phase() != PhaseHalted {
		t.Fatalf("got %v", e.Phase())
	}

	// unbounded scan to the right
	_, err = run(t, "+[>+]", "")
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v", err)
	}
}

func TestCellWrap(t *testing.T) {
	e := NewEngine(Options{})
	e.Load(strings.Repeat("+", 256))
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if c, _ := e.Cell(0); c != 0 {
		t.Fatalf("got %v", c)
	}

	e.Load("-")
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if c, _ := e.Cell(0); c != CellMax {
		t.Fatalf("got %v", c)
	}

	e.Load(strings.Repeat("+", 300))
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if c, _ := e.Cell(0); c != 300-256 {
		t.Fatalf("got %v", c)
	}
}

func TestSkipZeroLoop(t *testing.T) {
	out, err := run(t, "[.+[.]>]+.", "")
	if err != nil {
		t.Fatal(err)
	}
	if out != "\x01" {
		t.Fatalf("got %q", out)
	}

	e := NewEngine(Options{})
	e.Load("[.[.].]x")
	var steps []Step
	for step, err := range e.Steps {
		if err != nil {
			t.Fatal(err)
		}
		steps = append(steps, step)
	}
	// '[' lands on its match, then 'x'
	if len(steps) != 2 {
		t.Fatalf("got %+v", steps)
	}
	if steps[1].Pos != 7 || steps[1].Op != OpNop {
		t.Fatalf("got %+v", steps[1])
	}
	if steps[0].Depth != 0 {
		t.Fatalf("got %+v", steps[0])
	}
}

func TestLoopDepth(t *testing.T) {
	e := NewEngine(Options{})
	e.Load("++[>+++[>++[-]<-]<-]>>[-]")
	depth := 0
	maxDepth := 0
	for step, err := range e.Steps {
		if err != nil {
			t.Fatal(err)
		}
		switch step.Op {
		case OpLoop:
			if step.Value != 0 {
				depth++
			}
		case OpEnd:
			if step.Value == 0 {
				depth--
			}
		}
		if depth < 0 {
			t.Fatal("negative depth")
		}
		if step.Depth != depth {
			t.Fatalf("at %d: got %d, expected %d", step.Pos, step.Depth, depth)
		}
		maxDepth = max(maxDepth, depth)
	}
	if maxDepth != 3 {
		t.Fatalf("got %v", maxDepth)
	}
	if e.Depth() != 0 {
		t.Fatalf("got %v", e.Depth())
	}
}

func TestBalancedProgramsAreWellFormed(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const ops = "><+-.,"
	gen := func(depth int) string {
		var b strings.Builder
		var rec func(depth int)
		rec = func(depth int) {
			for range rng.IntN(8) {
				if depth < 4 && rng.IntN(4) == 0 {
					b.WriteByte('[')
					rec(depth + 1)
					b.WriteByte(']')
					continue
				}
				b.WriteByte(ops[rng.IntN(len(ops))])
			}
		}
		rec(depth)
		return b.String()
	}

	for range 500 {
		program := gen(0)
		e := NewEngine(Options{
			Input: strings.NewReader("some input"),
		})
		e.Load(program)
		n := 0
		for _, err := range e.Steps {
			if errors.Is(err, ErrMalformedProgram) {
				t.Fatalf("%q: %v", program, err)
			}
			n++
			if err != nil || n > 10000 {
				break
			}
		}
	}
}

func TestLoadResets(t *testing.T) {
	out := new(bytes.Buffer)
	e := NewEngine(Options{
		Output: out,
	})

	e.Load(">+++>+[")
	if err := e.Run(); !errors.Is(err, ErrMalformedProgram) {
		t.Fatalf("got %v", err)
	}

	e.Load(".>.>.")
	if e.Phase() != PhaseLoaded || e.Pointer() != 0 || e.Depth() != 0 || e.Position() != 0 {
		t.Fatal()
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\x00\x00\x00" {
		t.Fatalf("got %q", out.String())
	}
}

func TestHalted(t *testing.T) {
	e := NewEngine(Options{})
	e.Load("+")
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); !errors.Is(err, ErrHalted) {
		t.Fatalf("got %v", err)
	}

	e.Load("<")
	if err := e.Run(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v", err)
	}
	if err := e.Run(); !errors.Is(err, ErrHalted) {
		t.Fatalf("got %v", err)
	}

	// a fresh engine holds the empty program
	e = NewEngine(Options{})
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
}

type reentrantWriter struct {
	engine *Engine
	err    error
}

func (r *reentrantWriter) WriteByte(byte) error {
	r.err = r.engine.Run()
	return nil
}

func TestReentrantRun(t *testing.T) {
	w := new(reentrantWriter)
	e := NewEngine(Options{
		Output: w,
	})
	w.engine = e
	e.Load("+.+")
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(w.err, ErrRunning) {
		t.Fatalf("got %v", w.err)
	}
	if c, _ := e.Cell(0); c != 2 {
		t.Fatalf("got %v", c)
	}
}

func TestStepsResume(t *testing.T) {
	out := new(bytes.Buffer)
	e := NewEngine(Options{
		Output: out,
	})
	e.Load("+++[>++<-]>.")
	n := 0
	for _, err := range e.Steps {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if n == 5 {
			break
		}
	}
	if e.Phase() != PhaseRunning {
		t.Fatalf("got %v", e.Phase())
	}
	if e.Depth() != 1 {
		t.Fatalf("got %v", e.Depth())
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\x06" {
		t.Fatalf("got %q", out.String())
	}
}

func TestEOFPolicy(t *testing.T) {
	for _, c := range []struct {
		policy    EOFPolicy
		afterRead Cell
		nilInput  Cell
	}{
		{EOFMinusOne, 255, 255},
		{EOFZero, 0, 0},
		{EOFUnchanged, 'x', 3},
	} {
		e := NewEngine(Options{
			Input: strings.NewReader("x"),
			EOF:   c.policy,
		})
		e.Load("+++>+++,,")
		if err := e.Run(); err != nil {
			t.Fatal(err)
		}
		if got, _ := e.Cell(1); got != c.afterRead {
			t.Fatalf("%v: got %v", c.policy, got)
		}

		// nil input is always at end
		e = NewEngine(Options{
			EOF: c.policy,
		})
		e.Load("+++,")
		if err := e.Run(); err != nil {
			t.Fatal(err)
		}
		if got, _ := e.Cell(0); got != c.nilInput {
			t.Fatalf("%v: got %v", c.policy, got)
		}
	}
}

func TestParseEOFPolicy(t *testing.T) {
	for str, expected := range map[string]EOFPolicy{
		"":          EOFMinusOne,
		"minus-one": EOFMinusOne,
		"zero":      EOFZero,
		"unchanged": EOFUnchanged,
	} {
		policy, err := ParseEOFPolicy(str)
		if err != nil {
			t.Fatal(err)
		}
		if policy != expected {
			t.Fatalf("got %v", policy)
		}
		if str != "" && policy.String() != str {
			t.Fatalf("got %v", policy.String())
		}
	}
	if _, err := ParseEOFPolicy("never"); err == nil {
		t.Fatal("should error")
	}
}

type failingIO struct {
	err error
}

func (f failingIO) ReadByte() (byte, error) {
	return 0, f.err
}

func (f failingIO) WriteByte(byte) error {
	return f.err
}

func TestIOErrors(t *testing.T) {
	ioErr := errors.New("broken pipe")

	e := NewEngine(Options{
		Input: failingIO{err: ioErr},
	})
	e.Load("+,+")
	err := e.Run()
	if !errors.Is(err, ioErr) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "read input at 1") {
		t.Fatalf("got %v", err)
	}

	e = NewEngine(Options{
		Output: failingIO{err: ioErr},
	})
	e.Load("..")
	err = e.Run()
	if !errors.Is(err, ioErr) {
		t.Fatalf("got %v", err)
	}
	if e.Executed() != 0 {
		t.Fatalf("got %v", e.Executed())
	}

	// nil output discards
	e = NewEngine(Options{})
	e.Load("+.")
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestNonInstructionsAreNops(t *testing.T) {
	program := "hello world! # 123 \n\t"
	e := NewEngine(Options{})
	e.Load(program)
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if e.Executed() != uint64(len(program)) {
		t.Fatalf("got %v", e.Executed())
	}
	if c, _ := e.Cell(0); c != 0 {
		t.Fatalf("got %v", c)
	}
}

func TestTap(t *testing.T) {
	var taps []map[string]any
	var whats []string
	e := NewEngine(Options{
		Tap: func(what string, globals map[string]any) {
			whats = append(whats, what)
			taps = append(taps, globals)
		},
	})
	e.Load("+++>++#[-]#")
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if len(taps) != 2 {
		t.Fatalf("got %v", taps)
	}
	if whats[0] != "tap at 6" {
		t.Fatalf("got %v", whats[0])
	}
	if taps[0]["dp"] != 1 || taps[0]["cell"] != 2 || taps[0]["depth"] != 0 {
		t.Fatalf("got %v", taps[0])
	}
	window := taps[0]["window"].([]int)
	if window[0] != 3 || window[1] != 2 {
		t.Fatalf("got %v", window)
	}
	if taps[1]["cell"] != 0 {
		t.Fatalf("got %v", taps[1])
	}
}

func TestDump(t *testing.T) {
	e := NewEngine(Options{})
	e.Load(">+++<[")
	err := e.Run()
	if !errors.Is(err, ErrMalformedProgram) {
		t.Fatalf("got %v", err)
	}
	buf := new(bytes.Buffer)
	e.Dump(buf)
	out := buf.String()
	for _, expected := range []string{
		"phase: halted\n",
		"ip: 5/6 ('[')\n",
		"dp: 0/30000\n",
		"loops: []\n",
		"00000:[00] 03 ",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("expected %q in %s", expected, out)
		}
	}

	e = NewEngine(Options{
		TapeSize: 8,
	})
	e.Load(">>>>>>>+")
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	e.Dump(buf)
	if !strings.Contains(buf.String(), " 00 [01]\n") {
		t.Fatalf("got %s", buf.String())
	}
}
