// Package postgres implements the repository contracts on top of pgx.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elevatepath/elevatepath/internal/repository"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) repository.Store {
	return &Store{pool: pool}
}
