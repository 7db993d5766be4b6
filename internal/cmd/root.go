package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jocassid/unixutils/internal/security"
)

var (
	// Version is set at build time
	Version = "dev"

	// Global flags
	verbose bool
	yesFlag bool // skip prompts for non-interactive use
)

var rootCmd = &cobra.Command{
	Use:   "unixutils",
	Short: "Run and classify Unix commands on remote hosts",
	Long: `Unixutils runs standard Unix commands on remote hosts over SSH and
turns their interleaved stdout/stderr output into structured results.
Known-benign stderr noise is recognized and reclassified instead of being
reported as an error.

Quick start:
  unixutils hosts add web john@web.example.com   # Register a host
  unixutils df web                               # Remote disk usage
  unixutils run web uptime                       # Arbitrary command

Commands:
  hosts    Manage the host registry
  df       Show disk usage on a remote host
  run      Run a command on a remote host
  shell    Open an interactive shell on a remote host

Environment Variables:
  UNIXUTILS_PASSWORD             SSH password (otherwise prompted)
  UNIXUTILS_SSH_KEY              SSH private key content
  UNIXUTILS_KNOWN_HOSTS          SSH known_hosts content
  UNIXUTILS_SKIP_HOST_KEY_CHECK  Skip host key verification (true/false)`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed logs")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "Skip prompts (non-interactive mode)")

	rootCmd.SetVersionTemplate(`unixutils {{.Version}}
`)
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// IsYesMode returns true if --yes flag is set (non-interactive mode)
func IsYesMode() bool {
	return yesFlag
}

// PrintError prints a formatted error message
func PrintError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "❌ "+msg+"\n", args...)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	fmt.Printf("✅ "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	fmt.Printf("ℹ️  "+msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	fmt.Printf("⚠️  "+msg+"\n", args...)
}

// PrintVerbose prints a message only in verbose mode
func PrintVerbose(msg string, args ...interface{}) {
	if verbose {
		fmt.Printf("   "+msg+"\n", args...)
	}
}

// PrintVerboseCommand prints a command in verbose mode with sensitive values masked
func PrintVerboseCommand(command string) {
	if verbose {
		fmt.Printf("   Running: %s\n", security.SanitizeCommandForLog(command))
	}
}
