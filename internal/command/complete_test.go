package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/olivermillard/mention/internal/types"
)

func TestCompleteCommand(t *testing.T) {
	users := setupTestEnv(t)

	output, err := executeCommand(NewRootCmd("test"), "complete", "--directory", users,
		"--text", "hi @oliver there", "--caret", "10", "--handle", "olly")
	if err != nil {
		t.Fatalf("complete: %v\n%s", err, output)
	}
	if output != "hi Oliver Young there\ncaret: 15\n" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestCompleteCommandJSON(t *testing.T) {
	users := setupTestEnv(t)

	output, err := executeCommand(NewRootCmd("test"), "complete", "--json", "--directory", users,
		"--handle", "@zoe", "cc @z")
	if err != nil {
		t.Fatalf("complete: %v\n%s", err, output)
	}
	var edit types.Edit
	if err := json.Unmarshal([]byte(output), &edit); err != nil {
		t.Fatalf("decode output: %v\n%s", err, output)
	}
	if edit.Buffer != "cc Zoë Saldaña" || edit.Caret != 14 {
		t.Fatalf("unexpected edit %+v", edit)
	}
}

func TestCompleteCommandErrors(t *testing.T) {
	users := setupTestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing handle", args: []string{"complete", "--directory", users, "@ol"}, want: "--handle is required"},
		{name: "unknown handle", args: []string{"complete", "--directory", users, "--handle", "nobody", "@ol"}, want: "unknown handle"},
		{name: "no query", args: []string{"complete", "--directory", users, "--handle", "olly", "hello"}, want: "no mention query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCommand(NewRootCmd("test"), tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(output, tt.want) {
				t.Fatalf("expected %q in output, got %q", tt.want, output)
			}
		})
	}
}
