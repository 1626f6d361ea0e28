package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olivermillard/mention/internal/mention"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [text]",
		Short: "Show the mention query at the caret and its matches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			res, err := mention.Resolve(cmd.Context(), provider, text, caret)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			ctx.Logger.Debug("resolved",
				zap.String("query", res.Query),
				zap.Int("candidates", len(res.Candidates)))

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}
			writeResolution(cmd.OutOrStdout(), res, ctx.Config.Limit)
			return nil
		},
	}

	cmd.Flags().String("text", "", "draft text (default: argument or stdin)")
	cmd.Flags().Int("caret", -1, "caret offset in characters (default: end of text)")
	return cmd
}

// readText takes the draft from --text, the first argument, or stdin, in that order.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if cmd.Flags().Changed("text") {
		text, _ := cmd.Flags().GetString("text")
		return text, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
