package remote

import (
	"io"
	"strings"
)

// Channel identifies which output stream of the remote command a line
// arrived on.
type Channel int

const (
	// ChannelStdout is the command's standard output, expected to carry
	// normal results.
	ChannelStdout Channel = iota
	// ChannelStderr is the command's standard error, expected to carry
	// error and warning text.
	ChannelStderr
)

// String returns the conventional stream name.
func (c Channel) String() string {
	if c == ChannelStderr {
		return "stderr"
	}
	return "stdout"
}

// LineSource yields successive lines from one output stream of a remote
// command. ReadLine blocks until a line is available and returns the line
// without its trailing newline. It returns io.EOF once the stream is
// exhausted; any other error is a transport failure.
type LineSource interface {
	ReadLine() (string, error)
}

// LineEvent is one trimmed, non-empty line together with the channel it
// originated from.
type LineEvent struct {
	Text    string
	Channel Channel
}

// LineStream merges the two output streams of a remote command into a
// single bounded sequence of LineEvents. Each iteration performs one
// blocking read on stdout and then one on stderr, so relative order between
// the two channels reflects the read schedule, not the order the remote
// process wrote them. Order within a single channel is preserved.
//
// A LineStream is not restartable and must only be used from one goroutine.
type LineStream struct {
	stdout, stderr sourceState
	maxLines       int
	iterations     int
	pending        *LineEvent
	done           bool
	truncated      bool
}

type sourceState struct {
	src       LineSource
	exhausted bool
}

// NewLineStream returns a stream over the given sources, reading at most
// maxLines iterations. A maxLines of zero or less means unbounded.
func NewLineStream(stdout, stderr LineSource, maxLines int) *LineStream {
	return &LineStream{
		stdout:   sourceState{src: stdout},
		stderr:   sourceState{src: stderr},
		maxLines: maxLines,
	}
}

// Next returns the next line event. It returns ok=false once both sources
// are exhausted or the line bound is reached; the bound truncates silently,
// indistinguishable from natural exhaustion. A transport-level read failure
// ends the stream and is returned alongside ok=false.
func (s *LineStream) Next() (LineEvent, bool, error) {
	if s.pending != nil {
		event := *s.pending
		s.pending = nil
		return event, true, nil
	}

	for !s.done {
		if s.maxLines > 0 && s.iterations >= s.maxLines {
			s.done = true
			s.truncated = true
			break
		}
		s.iterations++

		stdoutLine, stdoutRead, err := s.stdout.read()
		if err != nil {
			s.done = true
			return LineEvent{}, false, err
		}
		stderrLine, stderrRead, err := s.stderr.read()
		if err != nil {
			s.done = true
			return LineEvent{}, false, err
		}

		if !stdoutRead && !stderrRead {
			s.done = true
			break
		}

		var event *LineEvent
		if stdoutLine != "" {
			event = &LineEvent{Text: stdoutLine, Channel: ChannelStdout}
		}
		if stderrLine != "" {
			stderrEvent := LineEvent{Text: stderrLine, Channel: ChannelStderr}
			if event == nil {
				event = &stderrEvent
			} else {
				s.pending = &stderrEvent
			}
		}
		if event != nil {
			return *event, true, nil
		}
		// Both reads returned only whitespace; keep going.
	}

	return LineEvent{}, false, nil
}

// Truncated reports whether the stream ended at the line bound rather than
// by exhausting both sources. No event marks this; consumers of the event
// sequence cannot tell the difference.
func (s *LineStream) Truncated() bool {
	return s.truncated
}

// read performs one blocking read, returning the trimmed line and whether
// the source produced any data this iteration. A blank line counts as
// produced data but yields an empty trimmed string.
func (st *sourceState) read() (string, bool, error) {
	if st.exhausted {
		return "", false, nil
	}
	line, err := st.src.ReadLine()
	if err == io.EOF {
		st.exhausted = true
		if line == "" {
			return "", false, nil
		}
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		st.exhausted = true
		return "", false, err
	}
	return strings.TrimSpace(line), true, nil
}
