package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openStores(t *testing.T) map[string]UpdateLog {
	t.Helper()
	bs, err := OpenBolt(filepath.Join(t.TempDir(), "dotless.db"), "test_")
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	return map[string]UpdateLog{
		"memory": NewMemory(),
		"bolt":   bs,
	}
}

func TestMarkProcessed(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			fresh, err := s.MarkProcessed(ctx, 100)
			if err != nil || !fresh {
				t.Fatalf("first MarkProcessed = %v, %v; want true", fresh, err)
			}
			fresh, err = s.MarkProcessed(ctx, 100)
			if err != nil || fresh {
				t.Fatalf("second MarkProcessed = %v, %v; want false", fresh, err)
			}
			fresh, err = s.MarkProcessed(ctx, 101)
			if err != nil || !fresh {
				t.Fatalf("other id MarkProcessed = %v, %v; want true", fresh, err)
			}
		})
	}
}

func TestPrune(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			for _, id := range []int64{1, 2, 3} {
				if _, err := s.MarkProcessed(ctx, id); err != nil {
					t.Fatalf("MarkProcessed(%d): %v", id, err)
				}
			}

			removed, err := s.Prune(ctx, time.Now().Add(-time.Hour))
			if err != nil || removed != 0 {
				t.Fatalf("Prune(past) = %d, %v; want 0", removed, err)
			}

			removed, err = s.Prune(ctx, time.Now().Add(time.Hour))
			if err != nil || removed != 3 {
				t.Fatalf("Prune(future) = %d, %v; want 3", removed, err)
			}

			fresh, err := s.MarkProcessed(ctx, 1)
			if err != nil || !fresh {
				t.Errorf("MarkProcessed after prune = %v, %v; want true", fresh, err)
			}
		})
	}
}

func TestForget(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if err := s.Forget(ctx, 7); err != nil {
				t.Fatalf("Forget(unknown) = %v", err)
			}
			if _, err := s.MarkProcessed(ctx, 7); err != nil {
				t.Fatalf("MarkProcessed: %v", err)
			}
			if err := s.Forget(ctx, 7); err != nil {
				t.Fatalf("Forget: %v", err)
			}
			fresh, err := s.MarkProcessed(ctx, 7)
			if err != nil || !fresh {
				t.Errorf("MarkProcessed after Forget = %v, %v; want true", fresh, err)
			}
		})
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dotless.db")
	ctx := context.Background()

	bs, err := OpenBolt(path, "")
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if _, err := bs.MarkProcessed(ctx, 42); err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	if err := bs.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	bs, err = OpenBolt(path, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer bs.Close()
	fresh, err := bs.MarkProcessed(ctx, 42)
	if err != nil || fresh {
		t.Errorf("MarkProcessed after reopen = %v, %v; want false", fresh, err)
	}
}

func TestClosedStore(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if _, err := s.MarkProcessed(context.Background(), 1); !errors.Is(err, ErrClosed) {
				t.Errorf("MarkProcessed after close = %v, want ErrClosed", err)
			}
		})
	}
}

func TestOpenWithoutBackend(t *testing.T) {
	s, err := Open(context.Background(), Options{})
	if err != nil || s != nil {
		t.Errorf("Open(empty) = %v, %v; want nil, nil", s, err)
	}
}

func TestOpenBolt(t *testing.T) {
	s, err := Open(context.Background(), Options{BoltPath: filepath.Join(t.TempDir(), "x.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*BoltStore); !ok {
		t.Errorf("Open returned %T, want *BoltStore", s)
	}
}
