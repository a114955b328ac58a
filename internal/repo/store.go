package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store hands out repositories bound either to the pool or to a transaction.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InTx runs fn in a read-committed transaction. Callers take row locks with
// GetForUpdate before writing. The tx commits when fn returns nil and rolls
// back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(bind(tx))
	})
}

// ReadTx runs fn in a read-only repeatable-read transaction so a composite
// view is read from one snapshot.
func (s *Store) ReadTx(ctx context.Context, fn func(Repos) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	return pgx.BeginTxFunc(ctx, s.pool, opts, func(tx pgx.Tx) error {
		return fn(bind(tx))
	})
}

func bind(q Querier) Repos {
	return Repos{
		Tasks:    NewTaskRepo(q),
		SubTasks: NewSubTaskRepo(q),
	}
}
