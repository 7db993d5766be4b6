package remote

import "io"

// MockSession is a test double that records started commands and returns a
// scripted process.
type MockSession struct {
	StartFunc func(command string) (Process, error)
	Commands  []string
}

// Start records the command and delegates to StartFunc, defaulting to an
// empty successful process.
func (m *MockSession) Start(command string) (Process, error) {
	m.Commands = append(m.Commands, command)
	if m.StartFunc != nil {
		return m.StartFunc(command)
	}
	return &ScriptedProcess{}, nil
}

// ScriptedProcess is a Process whose output is a fixed script of lines.
type ScriptedProcess struct {
	StdoutLines []string
	StderrLines []string
	WaitErr     error
	WaitCalled  bool
	CloseCalled bool
}

// Stdout returns a line source over the scripted stdout lines.
func (p *ScriptedProcess) Stdout() LineSource {
	return &sliceSource{lines: p.StdoutLines}
}

// Stderr returns a line source over the scripted stderr lines.
func (p *ScriptedProcess) Stderr() LineSource {
	return &sliceSource{lines: p.StderrLines}
}

// Wait returns the configured exit error.
func (p *ScriptedProcess) Wait() error {
	p.WaitCalled = true
	return p.WaitErr
}

// Close records that the process was torn down without waiting.
func (p *ScriptedProcess) Close() error {
	p.CloseCalled = true
	return nil
}

// sliceSource serves lines from a slice and then io.EOF.
type sliceSource struct {
	lines []string
	next  int
}

func (s *sliceSource) ReadLine() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}
