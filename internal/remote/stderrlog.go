package remote

// StderrLog retains every stderr line delivered to a command, in arrival
// order, so a caller can report them after a failed run. Commands compose
// it by embedding and appending from their stderr handler.
type StderrLog struct {
	lines []string
}

// Append records one stderr line.
func (l *StderrLog) Append(line string) {
	l.lines = append(l.lines, line)
}

// StderrLines returns the recorded lines in arrival order.
func (l *StderrLog) StderrLines() []string {
	return l.lines
}
