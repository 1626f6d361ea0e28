package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const testDirectoryJSON = `[
	{"username": "olly", "name": "Oliver Young", "avatar_url": "olly.png"},
	{"username": "zoe", "name": "Zoë Saldaña", "avatar_url": "zoe.png"},
	{"username": "annlee", "name": "Ann Lee", "avatar_url": ""},
	{"username": "bot-ci", "name": "CI Bot", "avatar_url": ""}
]`

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// setupTestEnv isolates HOME so no user config leaks in and returns a
// directory file path.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	color.NoColor = true
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "users.json")
	if err := os.WriteFile(path, []byte(testDirectoryJSON), 0o644); err != nil {
		t.Fatalf("write directory: %v", err)
	}
	return path
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd, "--version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(output, "mention version test") {
		t.Fatalf("expected version output, got %q", output)
	}
}

func TestRootCommandHelp(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, sub := range []string{"resolve", "complete", "chat", "watch", "import", "directory", "mcp"} {
		if !strings.Contains(output, sub) {
			t.Fatalf("expected %q in help output, got %q", sub, output)
		}
	}
}

func TestConfigFileIsUsed(t *testing.T) {
	users := setupTestEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	config := "limit: 1\ndirectory:\n  sources:\n    - kind: file\n      path: " + users + "\n  exclude: [\"bot-*\"]\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	output, err := executeCommand(NewRootCmd("test"), "directory", "--config", configPath)
	if err != nil {
		t.Fatalf("directory: %v\n%s", err, output)
	}
	if strings.Contains(output, "bot-ci") {
		t.Fatalf("excluded handle listed: %q", output)
	}
	if !strings.Contains(output, "3 users") {
		t.Fatalf("expected three users, got %q", output)
	}
}

func TestInvalidConfigIsReported(t *testing.T) {
	setupTestEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("limit: -2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	output, err := executeCommand(NewRootCmd("test"), "directory", "--config", configPath)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(output, "Error: invalid config") {
		t.Fatalf("expected error output, got %q", output)
	}
}

func TestChatRejectsJSON(t *testing.T) {
	setupTestEnv(t)

	output, err := executeCommand(NewRootCmd("test"), "chat", "--json")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(output, "--json not supported") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestCommandErrorsAreMarkedReported(t *testing.T) {
	setupTestEnv(t)

	_, err := executeCommand(NewRootCmd("test"), "complete", "@ol")
	var reported *reportedError
	if !errors.As(err, &reported) {
		t.Fatalf("expected reported error, got %v", err)
	}

	_, err = executeCommand(NewRootCmd("test"), "resolve", "--no-such-flag")
	if err == nil || errors.As(err, &reported) {
		t.Fatalf("expected unreported flag error, got %v", err)
	}
}

func TestIsSchemaError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: errors.New("SQL logic error: no such table: directory_entries"), want: true},
		{err: errors.New("table directory_entries has no column named avatar_url"), want: true},
		{err: errors.New("connection refused"), want: false},
	}
	for _, tt := range tests {
		if got := isSchemaError(tt.err); got != tt.want {
			t.Fatalf("isSchemaError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
