package ssh

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// KeyInfo describes one private key found under ~/.ssh.
type KeyInfo struct {
	Path        string
	Name        string
	Type        string // "ed25519", "rsa", "ecdsa", ...
	IsEncrypted bool   // passphrase-protected
}

// DiscoverKeys scans ~/.ssh for private keys, preferring ed25519 over rsa
// over ecdsa. Invalid key files are skipped.
func DiscoverKeys() ([]KeyInfo, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	sshDir := filepath.Join(homeDir, ".ssh")
	entries, err := os.ReadDir(sshDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read .ssh directory: %w", err)
	}

	var keys []KeyInfo
	for _, entry := range entries {
		if entry.IsDir() || !looksLikePrivateKey(entry.Name()) {
			continue
		}
		info, err := InspectKey(filepath.Join(sshDir, entry.Name()))
		if err != nil {
			continue
		}
		keys = append(keys, *info)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keyTypePriority(keys[i].Type) < keyTypePriority(keys[j].Type)
	})
	return keys, nil
}

func looksLikePrivateKey(name string) bool {
	if strings.HasSuffix(name, ".pub") {
		return false
	}
	switch name {
	case "known_hosts", "authorized_keys", "config":
		return false
	}
	return strings.HasPrefix(name, "id_") || strings.HasSuffix(name, ".pem")
}

// keyTypePriority returns sort priority for key types (lower is better)
func keyTypePriority(keyType string) int {
	switch keyType {
	case "ed25519":
		return 1
	case "rsa":
		return 2
	case "ecdsa":
		return 3
	default:
		return 4
	}
}

// InspectKey parses a key file and reports its type and whether it is
// passphrase-protected.
func InspectKey(path string) (*KeyInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	info := &KeyInfo{
		Path: path,
		Name: filepath.Base(path),
		Type: detectKeyType(data),
	}

	if _, err := ssh.ParsePrivateKey(data); err != nil {
		if isPassphraseError(err) {
			info.IsEncrypted = true
			return info, nil
		}
		return nil, fmt.Errorf("invalid SSH key: %w", err)
	}
	return info, nil
}

func isPassphraseError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "passphrase") ||
		strings.Contains(msg, "encrypted") ||
		strings.Contains(msg, "ENCRYPTED")
}

// detectKeyType infers the key type from the PEM header, defaulting to
// ed25519 for the modern OpenSSH format.
func detectKeyType(data []byte) string {
	content := string(data)
	switch {
	case strings.Contains(content, "OPENSSH PRIVATE KEY"):
		// The format hides the algorithm; ed25519 is the modern default.
		return "ed25519"
	case strings.Contains(content, "RSA PRIVATE KEY"):
		return "rsa"
	case strings.Contains(content, "EC PRIVATE KEY"):
		return "ecdsa"
	case strings.Contains(content, "DSA PRIVATE KEY"):
		return "dsa"
	}
	return "unknown"
}

// TryConnect attempts a short-lived connection with a specific key.
func TryConnect(host, user string, port int, keyPath string) error {
	client := NewClient(host, user, port, keyPath,
		WithTimeout(10*time.Second),
		WithRetries(1),
	)
	if err := client.Connect(); err != nil {
		return err
	}
	return client.Close()
}
