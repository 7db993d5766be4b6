package remote

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMaxLines bounds how many read iterations Execute performs for a
// single command, as a safeguard against runaway output.
const DefaultMaxLines = 10000

// Process is a started remote command.
type Process interface {
	// Stdout returns the command's standard output line source.
	Stdout() LineSource
	// Stderr returns the command's standard error line source.
	Stderr() LineSource
	// Wait blocks until the command finishes, releases the underlying
	// resources, and returns the command's exit error, if any. It must be
	// called after the output sources are drained.
	Wait() error
	// Close releases the underlying resources without waiting for the
	// command to finish. Used when output reading stopped early and the
	// remote command may still be running.
	Close() error
}

// Session starts commands on a remote host over an established connection.
type Session interface {
	Start(command string) (Process, error)
}

// Command is a remote command together with per-line handlers for its two
// output channels. Handlers are invoked synchronously, in per-channel line
// order, with a 1-based line number local to that channel.
type Command interface {
	// CommandLine returns the literal command line to run.
	CommandLine() string
	HandleStdoutLine(lineNumber int, line string)
	HandleStderrLine(lineNumber int, line string)
}

// Base holds the executable name and ordered argument list shared by all
// commands. The zero value is unusable; construct with NewBase.
type Base struct {
	executable string
	args       []string
}

// NewBase returns a Base for the given executable and initial arguments.
func NewBase(executable string, args ...string) Base {
	return Base{executable: executable, args: append([]string(nil), args...)}
}

// AppendArg appends arguments in order.
func (b *Base) AppendArg(args ...string) {
	b.args = append(b.args, args...)
}

// CommandLine joins the executable and arguments with single spaces. No
// quoting or escaping is applied: an argument containing whitespace or
// shell metacharacters is interpreted by the remote shell. Callers passing
// untrusted values must escape them first (see the security package).
func (b *Base) CommandLine() string {
	pieces := make([]string, 0, len(b.args)+1)
	pieces = append(pieces, b.executable)
	pieces = append(pieces, b.args...)
	return strings.Join(pieces, " ")
}

// Option configures a single Execute call.
type Option func(*options)

type options struct {
	maxLines int
}

// WithMaxLines overrides the read-iteration bound. Zero or negative means
// unbounded.
func WithMaxLines(n int) Option {
	return func(o *options) {
		o.maxLines = n
	}
}

// Execute runs cmd on the session and dispatches every output line to the
// matching handler. Stdout and stderr keep independent, monotonically
// increasing line counters. The context is checked between read iterations;
// a blocked read is not interrupted.
//
// The returned error is nil only if the command started, its output was
// consumed, and it exited successfully. Per-line parsing problems inside
// handlers never surface here; only transport failures and the remote exit
// status do.
func Execute(ctx context.Context, session Session, cmd Command, opts ...Option) error {
	o := options{maxLines: DefaultMaxLines}
	for _, opt := range opts {
		opt(&o)
	}

	commandLine := cmd.CommandLine()
	if strings.TrimSpace(commandLine) == "" {
		return fmt.Errorf("empty command line")
	}

	proc, err := session.Start(commandLine)
	if err != nil {
		return fmt.Errorf("failed to start %q: %w", commandLine, err)
	}

	stream := NewLineStream(proc.Stdout(), proc.Stderr(), o.maxLines)
	stdoutLineNum := 0
	stderrLineNum := 0
	for {
		if err := ctx.Err(); err != nil {
			proc.Close()
			return err
		}
		event, ok, err := stream.Next()
		if err != nil {
			proc.Close()
			return fmt.Errorf("read failed for %q: %w", commandLine, err)
		}
		if !ok {
			break
		}
		switch event.Channel {
		case ChannelStderr:
			stderrLineNum++
			cmd.HandleStderrLine(stderrLineNum, event.Text)
		default:
			stdoutLineNum++
			cmd.HandleStdoutLine(stdoutLineNum, event.Text)
		}
	}

	// A truncated command may still be producing output; waiting on it
	// could block forever, so tear it down instead. The caller cannot tell
	// truncation from natural completion either way.
	if stream.Truncated() {
		return proc.Close()
	}

	if err := proc.Wait(); err != nil {
		return fmt.Errorf("%q failed: %w", commandLine, err)
	}
	return nil
}
