package main

import (
	"bufio"
	"io"
)

// lineWriter remembers the last byte written, so programs can be separated by newlines.
type lineWriter struct {
	*bufio.Writer
	written bool
	last    byte
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{
		Writer: bufio.NewWriter(w),
	}
}

func (l *lineWriter) WriteByte(b byte) error {
	if err := l.Writer.WriteByte(b); err != nil {
		return err
	}
	l.written = true
	l.last = b
	return nil
}

// EndLine writes a newline if anything was written and the last byte was not one.
func (l *lineWriter) EndLine() error {
	if !l.written || l.last == '\n' {
		return nil
	}
	return l.WriteByte('\n')
}
