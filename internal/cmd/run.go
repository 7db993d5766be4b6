package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jocassid/unixutils/internal/remote"
	"github.com/jocassid/unixutils/internal/security"
)

var runCmd = &cobra.Command{
	Use:   "run <host> <command> [args...]",
	Short: "Run a command on a remote host",
	Long: `Runs an arbitrary command on a remote host and prints its output,
keeping the stdout/stderr split.

The command line is passed to the remote shell as-is, without quoting.

Example:
  unixutils run web uptime
  unixutils run web du -sh /var/log`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRun,
}

var runMaxLines int

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runMaxLines, "max-lines", 0, "Maximum output lines to read (0 = configured default)")
}

func runRun(cmd *cobra.Command, args []string) error {
	hostName := args[0]

	command := newPrintCommand(args[1], args[2:], os.Stdout, os.Stderr)
	if err := security.ValidateCommandLine(command.CommandLine()); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	conn, err := ConnectToHost(hostName)
	if err != nil {
		return err
	}
	defer conn.Client.Close()

	PrintVerboseCommand(command.CommandLine())

	maxLines := resolveMaxLines(runMaxLines, conn)
	if err := remote.Execute(cmd.Context(), conn.Client, command, remote.WithMaxLines(maxLines)); err != nil {
		return err
	}
	return nil
}

// printCommand forwards every output line to the given writers, preserving
// the channel split, and caches stderr for post-run inspection.
type printCommand struct {
	remote.Base
	remote.StderrLog
	out    io.Writer
	errOut io.Writer
}

func newPrintCommand(executable string, args []string, out, errOut io.Writer) *printCommand {
	return &printCommand{
		Base:   remote.NewBase(executable, args...),
		out:    out,
		errOut: errOut,
	}
}

func (c *printCommand) HandleStdoutLine(lineNumber int, line string) {
	fmt.Fprintln(c.out, line)
}

func (c *printCommand) HandleStderrLine(lineNumber int, line string) {
	fmt.Fprintln(c.errOut, line)
	c.Append(line)
}
