package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jocassid/unixutils/internal/remote"
	"github.com/jocassid/unixutils/internal/security"
)

var dfCmd = &cobra.Command{
	Use:   "df <host> [path...]",
	Short: "Show disk usage on a remote host",
	Long: `Runs df on a remote host and prints the parsed filesystem table.

df on desktop systems often complains on stderr about the xdg document
portal mount (/run/user/<uid>/doc) it is not allowed to stat. That warning
is harmless; it is recognized and the rest of the output is classified as
normal table data instead of being reported as an error.

Example:
  unixutils df web
  unixutils df web --human-readable /home /var`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDf,
}

var (
	dfHumanReadable bool
	dfMaxLines      int
)

func init() {
	rootCmd.AddCommand(dfCmd)
	dfCmd.Flags().BoolVarP(&dfHumanReadable, "human-readable", "H", false, "Print sizes in human readable format (df -h)")
	dfCmd.Flags().IntVar(&dfMaxLines, "max-lines", 0, "Maximum output lines to read (0 = configured default)")
}

func runDf(cmd *cobra.Command, args []string) error {
	hostName := args[0]

	conn, err := ConnectToHost(hostName)
	if err != nil {
		return err
	}
	defer conn.Client.Close()

	df := remote.NewDf()
	if dfHumanReadable {
		df.AppendArg("-h")
	}
	for _, path := range args[1:] {
		// The command line is joined without quoting; escape paths here.
		df.AppendArg(security.ShellEscape(path))
	}

	PrintVerboseCommand(df.CommandLine())

	maxLines := resolveMaxLines(dfMaxLines, conn)
	if err := remote.Execute(cmd.Context(), conn.Client, df, remote.WithMaxLines(maxLines)); err != nil {
		PrintError("df on '%s' failed", hostName)
		for _, line := range df.StderrLines() {
			fmt.Fprintln(os.Stderr, line)
		}
		return err
	}

	printDfEntries(df.Entries())

	for _, line := range df.SkippedLines() {
		PrintVerbose("unparsed: %s", line)
	}
	return nil
}

// resolveMaxLines applies precedence: flag, then global config, then the
// built-in default.
func resolveMaxLines(flagValue int, conn *HostConnection) int {
	if flagValue > 0 {
		return flagValue
	}
	if conn.Global.MaxLines > 0 {
		return conn.Global.MaxLines
	}
	return remote.DefaultMaxLines
}

func printDfEntries(entries []remote.DfEntry) {
	if len(entries) == 0 {
		PrintWarning("No filesystems reported")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILESYSTEM\tSIZE\tUSED\tAVAIL\tUSE%\tMOUNTED ON")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Filesystem, e.Size, e.Used, e.Available, e.UsePercent, e.MountedOn)
	}
	w.Flush()
}
