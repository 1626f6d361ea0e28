package command

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olivermillard/mention/internal/db"
	"github.com/olivermillard/mention/internal/directory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON directory file into a SQLite store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				return writeCommandError(cmd, fmt.Errorf("--db is required"))
			}

			ctx, err := GetContext(cmd, false)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			entries, err := directory.NewFileProvider(args[0]).FetchDirectory(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			dbConn, err := db.OpenDatabase(dbPath)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer dbConn.Close()
			if err := db.InitSchema(dbConn); err != nil {
				return writeCommandError(cmd, err)
			}

			count, err := db.UpsertEntries(dbConn, entries)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			source, _ := filepath.Abs(args[0])
			_ = db.SetMeta(dbConn, "imported_from", source)
			_ = db.SetMeta(dbConn, "imported_at", strconv.FormatInt(time.Now().Unix(), 10))
			total, err := db.CountEntries(dbConn)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			ctx.Logger.Info("directory imported",
				zap.String("source", source),
				zap.Int("imported", count),
				zap.Int("total", total))

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"imported": count,
					"total":    total,
					"db":       dbPath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries into %s (%d total)\n", count, dbPath, total)
			return nil
		},
	}
	return cmd
}
