package security

import (
	"strings"
	"testing"
)

func TestValidateHostName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "production", false},
		{"with hyphen", "web-01", false},
		{"with underscore", "staging_eu", false},
		{"empty", "", true},
		{"leading hyphen", "-web", true},
		{"too long", strings.Repeat("a", 65), true},
		{"spaces", "my host", true},
		{"shell metachar", "host;rm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHostName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHostName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUnixUser(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "john", false},
		{"underscore prefix", "_svc", false},
		{"empty", "", true},
		{"uppercase", "John", true},
		{"digit prefix", "1john", true},
		{"too long", strings.Repeat("a", 33), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnixUser(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUnixUser(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "df -h", false},
		{"metacharacters allowed", "du -sh /var/* | sort", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"newline injection", "df\nrm -rf /", true},
		{"carriage return", "df\rrm", true},
		{"nul byte", "df\x00rm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommandLine(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCommandLine(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestShellEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "file.txt", "'file.txt'"},
		{"with space", "my file.txt", "'my file.txt'"},
		{"with single quote", "it's", `'it'\''s'`},
		{"with metacharacters", "$(rm -rf /)", `'$(rm -rf /)'`},
		{"empty", "", "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShellEscape(tt.input); got != tt.expected {
				t.Errorf("ShellEscape(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeCommandForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"unquoted password",
			"PASSWORD=secret ssh john@host",
			"PASSWORD=**** ssh john@host",
		},
		{
			"quoted password",
			`UNIXUTILS_PASSWORD='se cret' unixutils df web`,
			"UNIXUTILS_PASSWORD=**** unixutils df web",
		},
		{
			"no secrets",
			"df -h /",
			"df -h /",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeCommandForLog(tt.input); got != tt.expected {
				t.Errorf("SanitizeCommandForLog(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
