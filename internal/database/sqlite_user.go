package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type SQLiteUserStore struct {
	db *sqlx.DB
}

func NewSQLiteUserStore(db *sqlx.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

func (s *SQLiteUserStore) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := s.db.SelectContext(ctx, &users, "SELECT id, nombre FROM usuarios ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return users, nil
}

func (s *SQLiteUserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	return getByID(ctx, s.db, id)
}

func (s *SQLiteUserStore) Create(ctx context.Context, nombre string) (*User, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.GetContext(ctx, &id, "SELECT MAX(COUNT(*), COALESCE(MAX(id), 0)) + 1 FROM usuarios")
	if err != nil {
		return nil, fmt.Errorf("next id: %w", err)
	}

	u := User{ID: id, Nombre: nombre}
	if _, err := tx.NamedExecContext(ctx, "INSERT INTO usuarios (id, nombre) VALUES (:id, :nombre)", u); err != nil {
		return nil, fmt.Errorf("insert usuario: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteUserStore) UpdateName(ctx context.Context, id int64, nombre string) (*User, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE usuarios SET nombre = ? WHERE id = ?", nombre, id)
	if err != nil {
		return nil, fmt.Errorf("update usuario %d: %w", id, err)
	}
	if err := requireRows(res); err != nil {
		return nil, fmt.Errorf("update usuario %d: %w", id, err)
	}
	return &User{ID: id, Nombre: nombre}, nil
}

func (s *SQLiteUserStore) Delete(ctx context.Context, id int64) (*User, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	u, err := getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM usuarios WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("delete usuario %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *SQLiteUserStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM usuarios"); err != nil {
		return 0, fmt.Errorf("count usuarios: %w", err)
	}
	return n, nil
}

// requireRows returns ErrNotFound when res touched no rows.
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func getByID(ctx context.Context, q sqlx.QueryerContext, id int64) (*User, error) {
	var u User
	err := sqlx.GetContext(ctx, q, &u, "SELECT id, nombre FROM usuarios WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get usuario %d: %w", id, err)
	}
	return &u, nil
}
