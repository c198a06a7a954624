package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// UpdateLog remembers which Telegram update ids were already processed, so a
// webhook redelivery is acknowledged instead of handled twice.
type UpdateLog interface {
	// MarkProcessed records updateID and reports whether it was new.
	MarkProcessed(ctx context.Context, updateID int64) (bool, error)
	// Prune forgets updates processed before olderThan and returns how many
	// entries were removed.
	Prune(ctx context.Context, olderThan time.Time) (int, error)
	// Forget removes updateID so a redelivery is processed again. Forgetting
	// an unknown id is not an error.
	Forget(ctx context.Context, updateID int64) error
	Close() error
}

var ErrClosed = errors.New("store closed")

// Options selects and configures a backend.
type Options struct {
	DatabaseURL string
	BoltPath    string
	TablePrefix string
}

// Open returns the Postgres log when DatabaseURL is set, else the Bolt log
// when BoltPath is set, else nil (dedup disabled).
func Open(ctx context.Context, opts Options) (UpdateLog, error) {
	switch {
	case opts.DatabaseURL != "":
		ps, err := OpenPostgres(ctx, opts.DatabaseURL, opts.TablePrefix)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return ps, nil
	case opts.BoltPath != "":
		bs, err := OpenBolt(opts.BoltPath, opts.TablePrefix)
		if err != nil {
			return nil, fmt.Errorf("open bolt %s: %w", opts.BoltPath, err)
		}
		return bs, nil
	}
	return nil, nil
}
