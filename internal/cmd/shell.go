package cmd

import (
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell <host>",
	Short: "Open an interactive shell on a remote host",
	Long: `Opens an interactive login shell on a registered host.

Example:
  unixutils shell web`,
	Args: cobra.ExactArgs(1),
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	conn, err := ConnectToHost(args[0])
	if err != nil {
		return err
	}
	defer conn.Client.Close()

	return conn.Client.Shell()
}
