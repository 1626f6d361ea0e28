package command

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/olivermillard/mention/internal/mcp"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the mcp command.
func NewMCPCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve mention tools over MCP (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd, false)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			provider, err := ctx.Provider()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := mcp.NewServer(provider, version, ctx.Logger)
			if err := server.Run(runCtx); err != nil && runCtx.Err() == nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}
	return cmd
}
