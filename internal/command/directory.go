package command

import (
	"encoding/json"
	"fmt"

	"github.com/olivermillard/mention/internal/core"
	"github.com/olivermillard/mention/internal/types"
	"github.com/spf13/cobra"
)

// NewDirectoryCmd creates the directory command.
func NewDirectoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "List the merged directory, sorted by name",
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
			entries := []types.DirectoryEntry{}
			if provider != nil {
				fetched, err := provider.FetchDirectory(cmd.Context())
				if err != nil {
					return writeCommandError(cmd, err)
				}
				if sorted := core.SortDirectory(fetched); len(sorted) > 0 {
					entries = sorted
				}
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No Users Found")
				return nil
			}
			writeEntries(out, entries, 0)
			fmt.Fprintf(out, "%d users\n", len(entries))
			return nil
		},
	}
	return cmd
}
