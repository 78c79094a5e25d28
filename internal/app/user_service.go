package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/slizer98/api-rest-go/internal/config"
	"github.com/slizer98/api-rest-go/internal/database"
)

// App owns the user store shared by every handler.
type App struct {
	Users database.UserStore

	closer io.Closer
}

// New builds the store selected by cfg.StoreDriver and seeds it.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	seed := database.SeedUsers()

	if cfg.StoreDriver != "sqlite" {
		log.Debug().Str("driver", "memory").Int("seed", len(seed)).Msg("store ready")
		return &App{Users: database.NewMemoryUserStore(seed)}, nil
	}

	log.Debug().Str("driver", "sqlite").Msg("opening in-memory database")
	db, err := database.OpenSQLite()
	if err != nil {
		return nil, err
	}
	if err := database.InitSQLiteDB(ctx, db, seed, log); err != nil {
		db.Close()
		return nil, err
	}
	return &App{Users: database.NewSQLiteUserStore(db), closer: db}, nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
