package interp

import (
	"io"
)

// Sink receives program output, one line per print statement.
type Sink interface {
	WriteLine(line string) error
}

// WriterSink returns a Sink that writes each line to w followed by a newline.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

type writerSink struct {
	w io.Writer
}

func (s *writerSink) WriteLine(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// Lines is a Sink that keeps output in memory.
// The zero value is ready to use.
type Lines struct {
	lines []string
}

// WriteLine appends line. It never fails.
func (l *Lines) WriteLine(line string) error {
	l.lines = append(l.lines, line)
	return nil
}

// Lines returns the collected lines in output order.
func (l *Lines) Lines() []string {
	return l.lines
}

// Reset discards the collected lines.
func (l *Lines) Reset() {
	l.lines = nil
}
