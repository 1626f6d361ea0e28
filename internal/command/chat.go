package command

import (
	"fmt"
	"os"

	"github.com/olivermillard/mention/internal/chat"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive composer with @-mention completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
				return writeCommandError(cmd, fmt.Errorf("--json not supported for interactive chat"))
			}

			ctx, err := GetContext(cmd, true)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			provider, err := ctx.Provider()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			username, _ := cmd.Flags().GetString("as")
			if username == "" {
				username = os.Getenv("USER")
			}

			limit := ctx.Config.Limit
			if limit == 0 {
				limit = -1
			}
			if err := chat.Run(chat.Options{
				Provider: provider,
				Logger:   ctx.Logger,
				Username: username,
				Quiet:    ctx.Config.QuietInterval,
				Limit:    limit,
			}); err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().String("as", "", "name shown on posted comments (default: $USER)")
	return cmd
}
