package remote

import (
	"regexp"
	"strings"
)

// runUserPattern matches the warning df emits for the xdg document portal
// mount it cannot stat (e.g. "df: /run/user/1000/doc: Operation not
// permitted"). The warning is harmless, and once it appears the remainder
// of df's stderr is in practice misrouted table output.
var runUserPattern = regexp.MustCompile(`/run/user/(\d+)/doc`)

// DfEntry is one row of df's tabular output. Size, Used and Available keep
// df's own rendering (block counts, or human-readable units under -h).
type DfEntry struct {
	Filesystem string
	Size       string
	Used       string
	Available  string
	UsePercent string
	MountedOn  string
}

// Df runs the df command and collects its table into entries. Stderr lines
// are cached for post-run reporting unless the reclassification latch has
// flipped, in which case they are parsed as table rows instead. Instances
// are single-use: counters, latch and logs are not reset between runs.
type Df struct {
	Base
	StderrLog

	latch   *Latch
	entries []DfEntry
	skipped []string
}

// NewDf returns a df command. Extra arguments (flags, paths) can be added
// with AppendArg before execution.
func NewDf(args ...string) *Df {
	return &Df{
		Base:  NewBase("df", args...),
		latch: NewLatch(runUserPattern),
	}
}

// Entries returns the parsed table rows in output order.
func (d *Df) Entries() []DfEntry {
	return d.entries
}

// SkippedLines returns stdout lines that did not parse as table rows, in
// arrival order. The header row is recognized and not reported here.
func (d *Df) SkippedLines() []string {
	return d.skipped
}

// HandleStdoutLine parses one line of df output. Malformed lines are
// retained in the skipped list and do not abort the run.
func (d *Df) HandleStdoutLine(lineNumber int, line string) {
	if entry, ok := parseDfLine(line); ok {
		d.entries = append(d.entries, entry)
		return
	}
	if strings.HasPrefix(line, "Filesystem") {
		return
	}
	d.skipped = append(d.skipped, line)
}

// HandleStderrLine routes a stderr line through the latch. The line that
// flips the latch, and every stderr line after it, is delivered to the
// stdout handler (keeping its stderr line number); everything before it is
// cached as a diagnostic.
func (d *Df) HandleStderrLine(lineNumber int, line string) {
	if d.latch.Reroute(line) {
		d.HandleStdoutLine(lineNumber, line)
		return
	}
	d.Append(line)
}

// parseDfLine splits one table row. The mount point may itself contain
// spaces, so everything past the fifth column is rejoined.
func parseDfLine(line string) (DfEntry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 6 || fields[0] == "Filesystem" {
		return DfEntry{}, false
	}
	if !strings.HasSuffix(fields[4], "%") && fields[4] != "-" {
		return DfEntry{}, false
	}
	return DfEntry{
		Filesystem: fields[0],
		Size:       fields[1],
		Used:       fields[2],
		Available:  fields[3],
		UsePercent: fields[4],
		MountedOn:  strings.Join(fields[5:], " "),
	}, true
}
