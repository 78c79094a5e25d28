package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned by every UserStore method when no record has the
// requested id.
var ErrNotFound = errors.New("usuario no encontrado")

type User struct {
	ID     int64  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

// UserStore is the ordered collection of user records. List returns records
// in insertion order.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, nombre string) (*User, error)
	UpdateName(ctx context.Context, id int64, nombre string) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
	Count(ctx context.Context) (int, error)
}

// nextID returns size+1, or maxID+1 when deletions left a gap that would
// make size+1 collide with an existing id.
func nextID(size int, maxID int64) int64 {
	id := int64(size) + 1
	if maxID >= id {
		id = maxID + 1
	}
	return id
}
