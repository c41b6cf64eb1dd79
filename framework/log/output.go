package log

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output is a sink for formatted log lines. Implementations decide
// where a line goes (stderr, a file, several places at once) and
// whether the timestamp and debug flag are rendered.
type Output interface {
	Write(stamp time.Time, debug bool, msg string)
	Close() error
}

type multiOut []Output

func (m multiOut) Write(stamp time.Time, debug bool, msg string) {
	for _, out := range m {
		out.Write(stamp, debug, msg)
	}
}

func (m multiOut) Close() error {
	for _, out := range m {
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}

// MultiOutput duplicates every written line to each of outputs.
func MultiOutput(outputs ...Output) Output {
	return multiOut(outputs)
}

// NopOutput drops everything written to it. It backs the "off" target
// of ParseOutputOption.
type NopOutput struct{}

func (NopOutput) Write(time.Time, bool, string) {}

func (NopOutput) Close() error { return nil }

// ParseOutputOption builds an Output from a "-log" option value: a
// comma-separated list of targets, each "off", "stderr", or a file
// path (opened for appending). "off" cannot be combined with other
// targets. More than one target fans out through MultiOutput.
func ParseOutputOption(value string) (Output, error) {
	parts := strings.Split(value, ",")
	if len(parts) > 1 {
		for _, p := range parts {
			if p == "off" {
				return nil, errors.New("log: the 'off' target can't be combined with others")
			}
		}
	}

	outs := make([]Output, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "off":
			return NopOutput{}, nil
		case "stderr":
			outs = append(outs, WriterOutput(os.Stderr, false))
		default:
			f, err := os.OpenFile(p, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
			if err != nil {
				return nil, fmt.Errorf("log: can't open log file: %w", err)
			}
			outs = append(outs, WriteCloserOutput(f, true))
		}
	}
	if len(outs) == 1 {
		return outs[0], nil
	}
	return MultiOutput(outs...), nil
}
