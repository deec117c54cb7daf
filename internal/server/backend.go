package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/api"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/config"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/importer"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/parser"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/pgstore"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/store"
)

// Backend is the persistence selected by [database].driver.
type Backend struct {
	Driver      string
	Persister   importer.Persister
	Logs        api.LogReader    // nil for postgres
	Records     api.RecordReader // nil for postgres
	DB          api.Pinger
	Coordinator *importer.Coordinator
	close       func() error
}

// Close releases the database.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the configured database and builds the import coordinator
// on top of it.
func OpenBackend(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case "postgres":
		pg, err := pgstore.New(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		b.Persister, b.DB, b.close = pg, pg, pg.Close
	case "sqlite", "":
		if _, err := config.EnsureDataDir(cfg); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		st, err := store.New(config.SQLitePath(cfg))
		if err != nil {
			return nil, err
		}
		b.Persister, b.Logs, b.Records, b.DB, b.close = st, st, st, st, st.Close
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	b.Coordinator = importer.NewCoordinator(b.Persister,
		importer.WithLogger(log),
		importer.WithNumberFormat(parser.NumberFormat{DecimalComma: cfg.Import.DecimalComma}),
	)
	log.Info().Str("driver", b.Driver).Msg("database ready")
	return b, nil
}
