package ssh

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/jocassid/unixutils/internal/remote"
)

// Start runs command on the remote host and exposes its stdout and stderr
// as line sources, making Client a remote.Session. The returned process
// must be drained and then waited on; each Start uses a fresh SSH session.
func (c *Client) Start(command string) (remote.Process, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	stderr, err := session.StderrPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := session.Start(command); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to start command: %w", err)
	}

	return &process{
		session: session,
		stdout:  newLineReader(stdout),
		stderr:  newLineReader(stderr),
	}, nil
}

// process wraps one started command on one SSH session.
type process struct {
	session *ssh.Session
	stdout  *lineReader
	stderr  *lineReader
}

func (p *process) Stdout() remote.LineSource { return p.stdout }
func (p *process) Stderr() remote.LineSource { return p.stderr }

// Wait collects the command's exit status and closes the session. A
// non-zero exit surfaces as *ssh.ExitError.
func (p *process) Wait() error {
	err := p.session.Wait()
	p.session.Close()
	return err
}

// Close tears the session down without collecting the exit status. The
// remote command is terminated by the channel close.
func (p *process) Close() error {
	return p.session.Close()
}

// lineReader adapts a byte stream into a blocking line source.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its trailing newline. A final
// unterminated line is returned as-is; the following call reports io.EOF.
func (l *lineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
