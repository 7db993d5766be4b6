package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jocassid/unixutils/internal/config"
	"github.com/jocassid/unixutils/internal/security"
	"github.com/jocassid/unixutils/internal/ssh"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Manage the host registry",
	Long:  `Commands to add, list, and remove remote hosts.`,
}

var hostsAddCmd = &cobra.Command{
	Use:   "add <name> <user@host>",
	Short: "Add a host",
	Long: `Adds a host to the global configuration.

Example:
  unixutils hosts add web john@web.example.com
  unixutils hosts add backup john@backup.example.com --port 2222`,
	Args: cobra.ExactArgs(2),
	RunE: runHostsAdd,
}

var hostsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured hosts",
	RunE:  runHostsList,
}

var hostsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a host",
	Args:  cobra.ExactArgs(1),
	RunE:  runHostsRemove,
}

var (
	hostPort    int
	hostKeyPath string
	skipSSHTest bool
)

func init() {
	rootCmd.AddCommand(hostsCmd)
	hostsCmd.AddCommand(hostsAddCmd)
	hostsCmd.AddCommand(hostsListCmd)
	hostsCmd.AddCommand(hostsRemoveCmd)

	hostsAddCmd.Flags().IntVarP(&hostPort, "port", "p", 22, "SSH port")
	hostsAddCmd.Flags().StringVarP(&hostKeyPath, "key", "k", "", "SSH private key path")
	hostsAddCmd.Flags().BoolVar(&skipSSHTest, "skip-test", false, "Skip SSH connection test")
}

func runHostsAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	hostSpec := args[1]

	if err := security.ValidateHostName(name); err != nil {
		return fmt.Errorf("invalid host name: %w", err)
	}

	parts := strings.SplitN(hostSpec, "@", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid host format, use user@host")
	}
	user, host := parts[0], parts[1]

	if err := security.ValidateUnixUser(user); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	globalCfg, err := config.LoadGlobalConfig()
	if err != nil {
		return fmt.Errorf("failed to load global config: %w", err)
	}

	hostCfg := config.HostConfig{
		Host:    host,
		User:    user,
		Port:    hostPort,
		KeyPath: hostKeyPath,
	}

	if errs := config.ValidateHostConfig(&hostCfg); errs.HasErrors() {
		return fmt.Errorf("invalid host configuration: %w", errs)
	}

	if err := globalCfg.AddHost(name, hostCfg); err != nil {
		return err
	}

	if err := config.SaveGlobalConfig(globalCfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	PrintSuccess("Added host '%s' (%s@%s)", name, user, host)

	if skipSSHTest {
		PrintInfo("Skipping SSH connection test (--skip-test)")
		return nil
	}

	if err := testAndConfigureKey(name, &hostCfg, globalCfg); err != nil {
		PrintWarning("SSH connection could not be established: %v", err)
		PrintInfo("You can test the connection manually with: ssh %s@%s -p %d", user, host, hostCfg.Port)
	}

	return nil
}

// testAndConfigureKey tests the SSH connection and tries alternative keys
// if the configured one is rejected.
func testAndConfigureKey(name string, hostCfg *config.HostConfig, globalCfg *config.GlobalConfig) error {
	PrintInfo("Testing SSH connection...")

	if err := ssh.TryConnect(hostCfg.Host, hostCfg.User, hostCfg.Port, hostCfg.KeyPath); err == nil {
		PrintSuccess("SSH connection successful")
		return nil
	}

	PrintWarning("Connection failed with default key")

	keys, err := ssh.DiscoverKeys()
	if err != nil {
		return fmt.Errorf("failed to discover SSH keys: %w", err)
	}

	var availableKeys []ssh.KeyInfo
	for _, key := range keys {
		if key.IsEncrypted {
			PrintVerbose("Skipping encrypted key: %s", key.Name)
			continue
		}
		if hostCfg.KeyPath != "" && key.Path == hostCfg.KeyPath {
			continue
		}
		availableKeys = append(availableKeys, key)
	}

	if len(availableKeys) == 0 {
		return fmt.Errorf("no SSH keys available to try")
	}

	var workingKey *ssh.KeyInfo
	if IsInteractive() {
		workingKey = interactiveKeySelection(hostCfg, availableKeys)
	} else {
		workingKey = autoTryKeys(hostCfg, availableKeys)
	}

	if workingKey == nil {
		return fmt.Errorf("no working SSH key found")
	}

	hostCfg.KeyPath = workingKey.Path
	globalCfg.Hosts[name] = *hostCfg

	if err := config.SaveGlobalConfig(globalCfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	PrintSuccess("Updated host config with key: %s", workingKey.Path)
	return nil
}

// interactiveKeySelection prompts the user to select an SSH key
func interactiveKeySelection(hostCfg *config.HostConfig, keys []ssh.KeyInfo) *ssh.KeyInfo {
	options := make([]string, len(keys))
	for i, key := range keys {
		options[i] = fmt.Sprintf("%s (%s)", key.Name, key.Type)
	}

	fmt.Println()
	PrintInfo("Available SSH keys:")
	choice := PromptSelect("Select SSH key to use:", options)
	if choice < 0 {
		return nil
	}

	selectedKey := &keys[choice]
	PrintInfo("Testing with %s...", selectedKey.Path)

	if err := ssh.TryConnect(hostCfg.Host, hostCfg.User, hostCfg.Port, selectedKey.Path); err != nil {
		PrintError("Connection failed: %v", err)
		return nil
	}

	PrintSuccess("Connection successful!")
	return selectedKey
}

// autoTryKeys automatically tries available keys in order
func autoTryKeys(hostCfg *config.HostConfig, keys []ssh.KeyInfo) *ssh.KeyInfo {
	PrintInfo("Trying available SSH keys automatically...")

	for _, key := range keys {
		PrintVerbose("Trying %s...", key.Name)
		if err := ssh.TryConnect(hostCfg.Host, hostCfg.User, hostCfg.Port, key.Path); err == nil {
			PrintSuccess("SSH connection successful with %s", key.Name)
			return &key
		}
	}

	return nil
}

func runHostsList(cmd *cobra.Command, args []string) error {
	globalCfg, err := config.LoadGlobalConfig()
	if err != nil {
		return err
	}

	hosts := globalCfg.ListHosts()
	if len(hosts) == 0 {
		PrintInfo("No hosts configured")
		fmt.Println()
		fmt.Println("Add a host with:")
		fmt.Println("  unixutils hosts add <name> <user@host>")
		return nil
	}

	fmt.Println("Configured hosts:")
	fmt.Println()
	for _, name := range hosts {
		host := globalCfg.Hosts[name]
		fmt.Printf("  %s\n", name)
		fmt.Printf("    Host: %s@%s:%d\n", host.User, host.Host, host.Port)
		if host.KeyPath != "" {
			fmt.Printf("    Key:  %s\n", host.KeyPath)
		}
		fmt.Println()
	}

	return nil
}

func runHostsRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := security.ValidateHostName(name); err != nil {
		return fmt.Errorf("invalid host name: %w", err)
	}

	globalCfg, err := config.LoadGlobalConfig()
	if err != nil {
		return err
	}

	if err := globalCfg.RemoveHost(name); err != nil {
		return err
	}

	if err := config.SaveGlobalConfig(globalCfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	PrintSuccess("Removed host '%s'", name)
	return nil
}
