package config

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/olivermillard/mention/internal/db"
	"github.com/olivermillard/mention/internal/directory"
	"go.uber.org/zap"
)

// Directory is a provider built from configuration plus the resources it holds open.
type Directory struct {
	Provider directory.Provider
	dbs      []*sql.DB
}

// Close releases any databases opened for sqlite sources.
func (d *Directory) Close() error {
	var errs []error
	for _, conn := range d.dbs {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.dbs = nil
	return errors.Join(errs...)
}

// BuildDirectory turns the configured sources into one provider. With no
// sources the provider is nil, which the controller treats as an empty
// directory.
func (c *Config) BuildDirectory(logger *zap.Logger) (*Directory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := &Directory{}
	sources := make([]directory.Provider, 0, len(c.Directory.Sources))
	for _, source := range c.Directory.Sources {
		provider, conn, err := buildSource(source)
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		if conn != nil {
			out.dbs = append(out.dbs, conn)
		}
		sources = append(sources, provider)
	}
	if len(sources) == 0 {
		return out, nil
	}

	var provider directory.Provider = &directory.MultiProvider{
		Sources: sources,
		OnSourceError: func(index int, err error) {
			logger.Warn("directory source failed",
				zap.Int("source", index),
				zap.String("kind", c.Directory.Sources[index].Kind),
				zap.Error(err))
		},
	}
	if len(c.Directory.Exclude) > 0 {
		filtered, err := directory.NewFilteredProvider(provider, c.Directory.Exclude)
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		provider = filtered
	}
	out.Provider = provider
	return out, nil
}

func buildSource(source Source) (directory.Provider, *sql.DB, error) {
	switch source.Kind {
	case KindFile:
		return directory.NewFileProvider(source.Path), nil, nil
	case KindHTTP:
		token := ""
		if source.TokenEnv != "" {
			token = os.Getenv(source.TokenEnv)
		}
		provider, err := directory.NewHTTPProvider(source.URL, token, source.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return provider, nil, nil
	case KindSQLite:
		conn, err := db.OpenDatabase(source.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open directory db: %w", err)
		}
		if err := db.InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return &directory.SQLiteProvider{DB: conn}, conn, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", source.Kind)
	}
}
