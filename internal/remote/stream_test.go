package remote

import (
	"errors"
	"fmt"
	"testing"
)

// failingSource returns a transport error on the first read.
type failingSource struct {
	err error
}

func (f *failingSource) ReadLine() (string, error) {
	return "", f.err
}

func collect(t *testing.T, s *LineStream) []LineEvent {
	t.Helper()
	var events []LineEvent
	for {
		event, ok, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		if !ok {
			return events
		}
		events = append(events, event)
	}
}

func TestLineStream_Interleaving(t *testing.T) {
	stdout := &sliceSource{lines: []string{"a", "b"}}
	stderr := &sliceSource{lines: []string{"x"}}

	events := collect(t, NewLineStream(stdout, stderr, 0))

	expected := []LineEvent{
		{Text: "a", Channel: ChannelStdout},
		{Text: "x", Channel: ChannelStderr},
		{Text: "b", Channel: ChannelStdout},
	}
	if len(events) != len(expected) {
		t.Fatalf("expected %d events, got %d: %v", len(expected), len(events), events)
	}
	for i, want := range expected {
		if events[i] != want {
			t.Errorf("event %d: expected %+v, got %+v", i, want, events[i])
		}
	}
}

func TestLineStream_PerChannelOrder(t *testing.T) {
	stdout := &sliceSource{lines: []string{"s1", "s2", "s3"}}
	stderr := &sliceSource{lines: []string{"e1", "e2"}}

	events := collect(t, NewLineStream(stdout, stderr, 0))

	var stdoutSeen, stderrSeen []string
	for _, ev := range events {
		if ev.Channel == ChannelStdout {
			stdoutSeen = append(stdoutSeen, ev.Text)
		} else {
			stderrSeen = append(stderrSeen, ev.Text)
		}
	}
	for i, want := range []string{"s1", "s2", "s3"} {
		if stdoutSeen[i] != want {
			t.Errorf("stdout order broken at %d: got %v", i, stdoutSeen)
		}
	}
	for i, want := range []string{"e1", "e2"} {
		if stderrSeen[i] != want {
			t.Errorf("stderr order broken at %d: got %v", i, stderrSeen)
		}
	}
}

func TestLineStream_CountsNonEmptyLines(t *testing.T) {
	tests := []struct {
		name     string
		stdout   []string
		stderr   []string
		maxLines int
		expected int
	}{
		{"both short", []string{"a", "b"}, []string{"x"}, 0, 3},
		{"stderr only", nil, []string{"x", "y", "z"}, 0, 3},
		{"empty", nil, nil, 0, 0},
		{"bounded", []string{"a", "b", "c", "d"}, nil, 2, 2},
		{"bound counts iterations not lines", []string{"a", "b"}, []string{"x", "y"}, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := NewLineStream(
				&sliceSource{lines: tt.stdout},
				&sliceSource{lines: tt.stderr},
				tt.maxLines,
			)
			events := collect(t, stream)
			if len(events) != tt.expected {
				t.Errorf("expected %d events, got %d: %v", tt.expected, len(events), events)
			}
		})
	}
}

func TestLineStream_TrimsAndSkipsBlankLines(t *testing.T) {
	stdout := &sliceSource{lines: []string{"  a  ", "", "\t", "b"}}
	stderr := &sliceSource{lines: nil}

	events := collect(t, NewLineStream(stdout, stderr, 0))

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(events), events)
	}
	if events[0].Text != "a" || events[1].Text != "b" {
		t.Errorf("expected trimmed [a b], got %v", events)
	}
}

func TestLineStream_BlankLinesDoNotTerminate(t *testing.T) {
	// An iteration where both channels yield only whitespace must not end
	// the stream; only two empty reads do.
	stdout := &sliceSource{lines: []string{"", "late"}}
	stderr := &sliceSource{lines: []string{"  "}}

	events := collect(t, NewLineStream(stdout, stderr, 0))

	if len(events) != 1 || events[0].Text != "late" {
		t.Errorf("expected [late], got %v", events)
	}
}

func TestLineStream_SilentTruncation(t *testing.T) {
	stdout := &sliceSource{lines: []string{"a", "b", "c"}}
	stream := NewLineStream(stdout, &sliceSource{}, 1)

	events := collect(t, stream)
	if len(events) != 1 {
		t.Fatalf("expected truncation to 1 event, got %d", len(events))
	}
	if !stream.Truncated() {
		t.Error("expected Truncated() after hitting the bound")
	}

	// After truncation the stream stays ended.
	if _, ok, _ := stream.Next(); ok {
		t.Error("expected stream to remain ended after truncation")
	}
}

func TestLineStream_UnevenSources(t *testing.T) {
	// One source ends long before the other; the stream must keep going
	// until both are exhausted.
	var long []string
	for i := 0; i < 20; i++ {
		long = append(long, fmt.Sprintf("line%d", i))
	}
	stream := NewLineStream(&sliceSource{lines: long}, &sliceSource{lines: []string{"x"}}, 0)

	events := collect(t, stream)
	if len(events) != 21 {
		t.Errorf("expected 21 events, got %d", len(events))
	}
}

func TestLineStream_ReadError(t *testing.T) {
	transportErr := errors.New("connection reset")
	stream := NewLineStream(&failingSource{err: transportErr}, &sliceSource{}, 0)

	_, ok, err := stream.Next()
	if ok {
		t.Fatal("expected no event on transport failure")
	}
	if !errors.Is(err, transportErr) {
		t.Errorf("expected transport error, got %v", err)
	}

	// The stream is done after a failure.
	if _, ok, _ := stream.Next(); ok {
		t.Error("expected stream to stay ended after failure")
	}
}
