package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/olivermillard/mention/internal/mention"
	"github.com/olivermillard/mention/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-resolve a draft file every time it is saved",
		Args:  cobra.ExactArgs(1),
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
			caret, _ := cmd.Flags().GetInt("caret")

			out := cmd.OutOrStdout()
			presenter := &watchPresenter{out: out, limit: ctx.Config.Limit, jsonMode: ctx.JSONMode}
			controller := mention.New(provider,
				mention.WithPresenter(presenter),
				mention.WithLogger(ctx.Logger),
				mention.WithQuiet(ctx.Config.QuietInterval),
			)
			defer controller.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !ctx.JSONMode {
				fmt.Fprintf(out, "--- watching %s (Ctrl+C to stop) ---\n", args[0])
			}
			if err := runWatch(runCtx, args[0], caret, controller, ctx.Logger); err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().Int("caret", -1, "caret offset in characters (default: end of file)")
	return cmd
}

// runWatch feeds the file's contents to controller on every change until ctx
// is done. The directory is watched rather than the file so editors that
// save by rename are still seen.
func runWatch(ctx context.Context, path string, caret int, controller *mention.Controller, logger *zap.Logger) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	load := func() {
		data, err := os.ReadFile(target)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("read draft failed", zap.String("path", target), zap.Error(err))
			}
			return
		}
		text := strings.TrimRight(string(data), "\r\n")
		pos := caret
		if pos < 0 {
			pos = len([]rune(text))
		}
		controller.OnEdit(text, pos)
	}
	load()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				load()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// watchPresenter prints every candidate set the controller produces.
type watchPresenter struct {
	mu       sync.Mutex
	out      io.Writer
	limit    int
	jsonMode bool
}

func (p *watchPresenter) ShowCandidates(set types.CandidateSet) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.jsonMode {
		_ = json.NewEncoder(p.out).Encode(set)
		return
	}
	switch {
	case !set.Visible:
		fmt.Fprintln(p.out, dimColor.Sprint("(no query)"))
	case set.Collecting:
		fmt.Fprintf(p.out, "%s\n  Collecting User Data\n", spanColor.Sprint(set.Query))
	case len(set.Entries) == 0:
		fmt.Fprintf(p.out, "%s\n  No Users Found\n", spanColor.Sprint(set.Query))
	default:
		fmt.Fprintln(p.out, spanColor.Sprint(set.Query))
		writeEntries(p.out, set.Entries, p.limit)
	}
}

func (p *watchPresenter) RequestFocus() {}
