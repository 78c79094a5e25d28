package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SeedUsers is the initial content of every new store.
func SeedUsers() []User {
	return []User{
		{ID: 1, Nombre: "Erick"},
		{ID: 2, Nombre: "Juan"},
		{ID: 3, Nombre: "Pedro"},
		{ID: 4, Nombre: "Carlos"},
		{ID: 5, Nombre: "Luis"},
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS usuarios (
	seq    INTEGER PRIMARY KEY AUTOINCREMENT,
	id     INTEGER NOT NULL UNIQUE,
	nombre TEXT NOT NULL
);`

// OpenSQLite opens a private in-memory sqlite database. The pool is capped at
// one connection since every new connection to :memory: is a new database.
func OpenSQLite() (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// InitSQLiteDB creates the usuarios table and inserts seed when the table is
// empty.
func InitSQLiteDB(ctx context.Context, db *sqlx.DB, seed []User, log zerolog.Logger) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var userCount int
	if err := db.GetContext(ctx, &userCount, `SELECT COUNT(*) FROM usuarios`); err != nil {
		return fmt.Errorf("count usuarios: %w", err)
	}
	log.Debug().Int("userCount", userCount).Msg("schema ready")

	if userCount > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range seed {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO usuarios (id, nombre) VALUES (:id, :nombre)`, u); err != nil {
			return fmt.Errorf("seed usuario %d: %w", u.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Int("inserted", len(seed)).Msg("seed data inserted")
	return nil
}
