package config

// GlobalConfig represents the global ~/.config/unixutils/config.yaml
type GlobalConfig struct {
	Hosts       map[string]HostConfig `yaml:"hosts"`
	DefaultUser string                `yaml:"default_user,omitempty"`
	DefaultPort int                   `yaml:"default_port,omitempty"`
	// SSHTimeout is the connection timeout in seconds; 0 uses the built-in
	// default.
	SSHTimeout int `yaml:"ssh_timeout,omitempty"`
	// MaxLines caps how many output lines a single command run reads; 0
	// uses the built-in default.
	MaxLines int `yaml:"max_lines,omitempty"`
}

// HostConfig represents one configured remote host
type HostConfig struct {
	Host    string `yaml:"host"`
	User    string `yaml:"user"`
	Port    int    `yaml:"port,omitempty"`
	KeyPath string `yaml:"key_path,omitempty"`
}

// DefaultGlobalConfig returns a default global configuration
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Hosts:       make(map[string]HostConfig),
		DefaultPort: 22,
	}
}
