package command

import (
	"sync"

	"github.com/olivermillard/mention/internal/config"
	"github.com/olivermillard/mention/internal/directory"
	"github.com/olivermillard/mention/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CommandContext holds what a command needs after flags and config are merged.
type CommandContext struct {
	Config   *config.Config
	Logger   *zap.Logger
	JSONMode bool

	directory *config.Directory
}

// Provider builds the configured directory sources on first use.
func (c *CommandContext) Provider() (directory.Provider, error) {
	if c.directory == nil {
		dir, err := c.Config.BuildDirectory(c.Logger)
		if err != nil {
			return nil, err
		}
		c.directory = dir
	}
	return c.directory.Provider, nil
}

// Close releases the directory sources.
func (c *CommandContext) Close() {
	if c.directory != nil {
		_ = c.directory.Close()
	}
}

var (
	loggersMu sync.Mutex
	loggers   []*zap.Logger
)

func syncLoggers() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, logger := range loggers {
		_ = logger.Sync()
	}
	loggers = nil
}

// GetContext loads config, applies flag overrides and builds the logger.
// interactive routes logs away from the terminal.
func GetContext(cmd *cobra.Command, interactive bool) (*CommandContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	jsonMode, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:   level,
		File:    cfg.Log.File,
		Dev:     !jsonMode && !interactive,
		Discard: interactive,
	})
	if err != nil {
		return nil, err
	}
	loggersMu.Lock()
	loggers = append(loggers, logger)
	loggersMu.Unlock()

	return &CommandContext{
		Config:   cfg,
		Logger:   logger,
		JSONMode: jsonMode,
	}, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	files, _ := cmd.Flags().GetStringSlice("directory")
	url, _ := cmd.Flags().GetString("url")
	dbPath, _ := cmd.Flags().GetString("db")

	var sources []config.Source
	for _, path := range files {
		sources = append(sources, config.Source{Kind: config.KindFile, Path: path})
	}
	if url != "" {
		sources = append(sources, config.Source{Kind: config.KindHTTP, URL: url})
	}
	if dbPath != "" {
		sources = append(sources, config.Source{Kind: config.KindSQLite, Path: dbPath})
	}
	if len(sources) > 0 {
		cfg.Directory.Sources = sources
	}
	if cmd.Flags().Changed("quiet") {
		quiet, _ := cmd.Flags().GetDuration("quiet")
		cfg.QuietInterval = quiet
	}
	return cfg.Validate()
}
