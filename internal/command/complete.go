package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olivermillard/mention/internal/mention"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewCompleteCmd creates the complete command.
func NewCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [text]",
		Short: "Replace the mention query at the caret with a user's name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, _ := cmd.Flags().GetString("handle")
			if strings.TrimSpace(handle) == "" {
				return writeCommandError(cmd, fmt.Errorf("--handle is required"))
			}

			ctx, err := GetContext(cmd, false)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			text, err := readText(cmd, args)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			caret, _ := cmd.Flags().GetInt("caret")

			provider, err := ctx.Provider()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			edit, err := mention.Complete(cmd.Context(), provider, text, caret, handle)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			ctx.Logger.Debug("completed", zap.String("handle", handle), zap.Int("caret", edit.Caret))

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(edit)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, edit.Buffer)
			fmt.Fprintf(out, "caret: %d\n", edit.Caret)
			return nil
		},
	}

	cmd.Flags().String("text", "", "draft text (default: argument or stdin)")
	cmd.Flags().Int("caret", -1, "caret offset in characters (default: end of text)")
	cmd.Flags().String("handle", "", "handle of the user to insert")
	return cmd
}
