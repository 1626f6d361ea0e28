package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const AppName = "mention"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Mention - @-mention resolution for drafts and terminals",
		Long:          "Mention finds the @-query under the caret, matches it against a user directory and completes it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			syncLoggers()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default ~/.config/mention/config.yaml)")
	flags.Bool("json", false, "output in JSON format")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.StringSlice("directory", nil, "directory JSON file (repeatable, replaces configured sources)")
	flags.String("url", "", "directory URL (replaces configured sources)")
	flags.String("db", "", "directory SQLite database")
	flags.Duration("quiet", 0, "pause after typing before candidates refresh")

	cmd.AddCommand(
		NewChatCmd(),
		NewResolveCmd(),
		NewCompleteCmd(),
		NewImportCmd(),
		NewDirectoryCmd(),
		NewWatchCmd(),
		NewMCPCmd(version),
	)

	return cmd
}

// Execute runs the root command. Errors cobra raises before a command runs
// (unknown flags, wrong argument counts) are printed here.
func Execute() error {
	err := NewRootCmd(Version).Execute()
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	return err
}
