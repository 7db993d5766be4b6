package cmd

import (
	"fmt"
	"time"

	"github.com/jocassid/unixutils/internal/config"
	"github.com/jocassid/unixutils/internal/security"
	"github.com/jocassid/unixutils/internal/ssh"
)

// HostConnection holds a connected SSH client along with its host and
// global config.
type HostConnection struct {
	Client *ssh.Client
	Host   *config.HostConfig
	Global *config.GlobalConfig
}

// ConnectToHost validates the host name, loads the global config, and
// establishes an SSH connection with a password prompt as auth fallback.
// The caller must defer conn.Client.Close().
func ConnectToHost(name string, opts ...ssh.ClientOption) (*HostConnection, error) {
	if err := security.ValidateHostName(name); err != nil {
		return nil, fmt.Errorf("invalid host name: %w", err)
	}

	globalCfg, err := config.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}

	hostCfg, err := globalCfg.GetHost(name)
	if err != nil {
		return nil, err
	}

	allOpts := sshOptsFromGlobal(globalCfg, hostCfg, opts)

	client := ssh.NewClient(hostCfg.Host, hostCfg.User, hostCfg.Port, hostCfg.KeyPath, allOpts...)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return &HostConnection{
		Client: client,
		Host:   hostCfg,
		Global: globalCfg,
	}, nil
}

// sshOptsFromGlobal prepends the configured timeout and the interactive
// password prompt to any caller-supplied options.
func sshOptsFromGlobal(globalCfg *config.GlobalConfig, hostCfg *config.HostConfig, opts []ssh.ClientOption) []ssh.ClientOption {
	var base []ssh.ClientOption
	if globalCfg.SSHTimeout > 0 {
		base = append(base, ssh.WithTimeout(time.Duration(globalCfg.SSHTimeout)*time.Second))
	}
	base = append(base, ssh.WithPasswordPrompt(func() (string, error) {
		return PromptPassword(hostCfg.User, hostCfg.Host)
	}))
	return append(base, opts...)
}
