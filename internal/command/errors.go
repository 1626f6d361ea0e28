package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olivermillard/mention/internal/directory"
	"github.com/spf13/cobra"
)

// reportedError marks an error that has already been written to the user.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	if isSchemaError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: This looks like a schema mismatch. Try re-running: mention import FILE --db PATH")
	}
	var httpErr *directory.HTTPError
	if errors.As(err, &httpErr) && (httpErr.Status == 401 || httpErr.Status == 403) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: The directory endpoint rejected the request. Check token_env in your config.")
	}

	return &reportedError{err: err}
}

// isSchemaError checks if an error is a SQLite schema mismatch.
func isSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "has no column")
}
