package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStore struct {
	pool         *pgxpool.Pool
	tableUpdates string
}

func OpenPostgres(ctx context.Context, url, prefix string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	s := &PgStore{
		pool:         pool,
		tableUpdates: prefix + "processed_updates",
	}
	if err := s.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PgStore) init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`create table if not exists %s (
            update_id bigint primary key,
            processed_at timestamptz not null default now()
        )`, s.tableUpdates),
		fmt.Sprintf(`create index if not exists %s_processed_at_idx on %s (processed_at)`, s.tableUpdates, s.tableUpdates),
	}
	for _, q := range stmts {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *PgStore) Close() error { s.pool.Close(); return nil }

func (s *PgStore) MarkProcessed(ctx context.Context, updateID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`insert into %s (update_id, processed_at) values ($1, now()) on conflict (update_id) do nothing`, s.tableUpdates),
		updateID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PgStore) Forget(ctx context.Context, updateID int64) error {
	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`delete from %s where update_id = $1`, s.tableUpdates), updateID)
	return err
}

func (s *PgStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`delete from %s where processed_at < $1`, s.tableUpdates), olderThan)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
