package ssh

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Connection defaults, overridable per client with options.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 1 * time.Second
	DefaultMaxDelay     = 30 * time.Second
)

// PasswordFunc supplies a password on demand, typically by prompting.
type PasswordFunc func() (string, error)

type clientOptions struct {
	timeout      time.Duration
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	password     PasswordFunc
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

// WithTimeout sets the TCP connection timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.timeout = d }
}

// WithRetries sets how many connection attempts are made.
func WithRetries(n int) ClientOption {
	return func(o *clientOptions) { o.maxRetries = n }
}

// WithInitialDelay sets the delay before the first reconnection attempt.
func WithInitialDelay(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.initialDelay = d }
}

// WithMaxDelay caps the exponential backoff between attempts.
func WithMaxDelay(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.maxDelay = d }
}

// WithPasswordPrompt registers a fallback password source, used when no
// usable key is found or the host rejects key auth. The UNIXUTILS_PASSWORD
// environment variable takes precedence over the prompt.
func WithPasswordPrompt(fn PasswordFunc) ClientOption {
	return func(o *clientOptions) { o.password = fn }
}

// Client is an SSH connection to one remote host.
type Client struct {
	Host    string
	User    string
	Port    int
	KeyPath string
	opts    clientOptions
	config  *ssh.ClientConfig
	client  *ssh.Client
}

// NewClient creates an SSH client for host. A port of 0 defaults to 22.
func NewClient(host, user string, port int, keyPath string, opts ...ClientOption) *Client {
	if port == 0 {
		port = 22
	}
	c := &Client{
		Host:    host,
		User:    user,
		Port:    port,
		KeyPath: keyPath,
		opts: clientOptions{
			timeout:      DefaultTimeout,
			maxRetries:   DefaultMaxRetries,
			initialDelay: DefaultInitialDelay,
			maxDelay:     DefaultMaxDelay,
		},
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Connect establishes the SSH connection, retrying with exponential backoff.
func (c *Client) Connect() error {
	auth, err := c.authMethods()
	if err != nil {
		return err
	}

	hostKeyCallback, err := c.hostKeyCallback()
	if err != nil {
		return fmt.Errorf("host key verification failed: %w", err)
	}

	c.config = &ssh.ClientConfig{
		User:            c.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         c.opts.timeout,
	}

	return c.dial()
}

// Reconnect re-establishes a dropped connection using the configuration
// from the last successful Connect.
func (c *Client) Reconnect() error {
	if c.config == nil {
		return fmt.Errorf("cannot reconnect: Connect was never called")
	}
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	return c.dial()
}

func (c *Client) dial() error {
	addr := fmt.Sprintf("%s:%d", c.Host, c.Port)

	var lastErr error
	attempts := c.opts.maxRetries
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := ssh.Dial("tcp", addr, c.config)
		if err == nil {
			c.client = client
			return nil
		}
		lastErr = err
		if attempt < attempts {
			time.Sleep(c.backoffDelay(attempt))
		}
	}
	return fmt.Errorf("failed to connect to %s after %d attempts: %w", addr, attempts, lastErr)
}

// backoffDelay returns initialDelay * 2^(attempt-1), capped at maxDelay.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.opts.initialDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.opts.maxDelay {
			return c.opts.maxDelay
		}
	}
	if delay > c.opts.maxDelay {
		return c.opts.maxDelay
	}
	return delay
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// IsConnected returns true if the client is connected.
func (c *Client) IsConnected() bool {
	return c.client != nil
}

// NewSession creates a new SSH session.
func (c *Client) NewSession() (*ssh.Session, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}
	return c.client.NewSession()
}

// authMethods assembles key and password authentication. Key auth is tried
// first when a usable key exists; the password source is offered as a
// fallback so a host that only takes passwords still connects.
func (c *Client) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	signer, keyErr := c.loadPrivateKey()
	if keyErr == nil {
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if pw := c.passwordSource(); pw != nil {
		methods = append(methods, ssh.RetryableAuthMethod(ssh.PasswordCallback(pw), 3))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication method available "+
			"(set UNIXUTILS_SSH_KEY or UNIXUTILS_PASSWORD): %w", keyErr)
	}
	return methods, nil
}

// passwordSource returns the password callback, or nil when neither the
// environment variable nor a prompt is configured.
func (c *Client) passwordSource() PasswordFunc {
	if pw := os.Getenv("UNIXUTILS_PASSWORD"); pw != "" {
		return func() (string, error) { return pw, nil }
	}
	return c.opts.password
}

// loadPrivateKey loads the SSH private key
func (c *Client) loadPrivateKey() (ssh.Signer, error) {
	// Non-interactive use: key content in the environment wins
	if envKey := os.Getenv("UNIXUTILS_SSH_KEY"); envKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(envKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse UNIXUTILS_SSH_KEY: %w", err)
		}
		return signer, nil
	}

	keyPath := c.KeyPath
	if keyPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		// Try common key locations
		keyPaths := []string{
			filepath.Join(homeDir, ".ssh", "id_ed25519"),
			filepath.Join(homeDir, ".ssh", "id_rsa"),
		}
		for _, p := range keyPaths {
			if _, err := os.Stat(p); err == nil {
				keyPath = p
				break
			}
		}
		if keyPath == "" {
			return nil, fmt.Errorf("no SSH key found")
		}
	}

	// Expand ~ in path
	if len(keyPath) >= 2 && keyPath[:2] == "~/" {
		homeDir, _ := os.UserHomeDir()
		keyPath = filepath.Join(homeDir, keyPath[2:])
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return signer, nil
}

// hostKeyCallback returns the host key callback function.
// SECURITY: a valid known_hosts file is required by default. For
// non-interactive environments, set UNIXUTILS_KNOWN_HOSTS with the content
// of known_hosts, or UNIXUTILS_SKIP_HOST_KEY_CHECK=true to skip
// verification (not recommended).
func (c *Client) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if knownHostsContent := os.Getenv("UNIXUTILS_KNOWN_HOSTS"); knownHostsContent != "" {
		// knownhosts.New only accepts file paths
		tmpFile, err := os.CreateTemp("", "known_hosts")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp known_hosts: %w", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.WriteString(knownHostsContent); err != nil {
			return nil, fmt.Errorf("failed to write temp known_hosts: %w", err)
		}
		tmpFile.Close()

		callback, err := knownhosts.New(tmpFile.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to parse UNIXUTILS_KNOWN_HOSTS: %w", err)
		}
		return callback, nil
	}

	if os.Getenv("UNIXUTILS_SKIP_HOST_KEY_CHECK") == "true" {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	knownHostsPath := filepath.Join(homeDir, ".ssh", "known_hosts")

	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("SSH known_hosts file not found at %s. "+
			"Please connect to the host manually first with: ssh %s@%s -p %d\n"+
			"For non-interactive use, set UNIXUTILS_KNOWN_HOSTS or UNIXUTILS_SKIP_HOST_KEY_CHECK=true",
			knownHostsPath, c.User, c.Host, c.Port)
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read known_hosts: %w", err)
	}

	return callback, nil
}
