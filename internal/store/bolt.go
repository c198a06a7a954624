package store

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
)

type BoltStore struct {
	db         *bolt.DB
	bktUpdates []byte
}

var bucketUpdates = []byte("processed_updates")

func OpenBolt(path, prefix string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	bkt := []byte(prefix + string(bucketUpdates))
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bkt)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db, bktUpdates: bkt}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

func updateKey(updateID int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(updateID))
	return k
}

func (s *BoltStore) MarkProcessed(_ context.Context, updateID int64) (bool, error) {
	fresh := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bktUpdates)
		if b == nil {
			return ErrClosed
		}
		k := updateKey(updateID)
		if b.Get(k) != nil {
			return nil
		}
		fresh = true
		return b.Put(k, []byte(time.Now().UTC().Format(time.RFC3339Nano)))
	})
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return false, ErrClosed
	}
	return fresh, err
}

func (s *BoltStore) Forget(_ context.Context, updateID int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bktUpdates)
		if b == nil {
			return ErrClosed
		}
		return b.Delete(updateKey(updateID))
	})
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return err
}

func (s *BoltStore) Prune(_ context.Context, olderThan time.Time) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bktUpdates)
		if b == nil {
			return ErrClosed
		}
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			at, err := time.Parse(time.RFC3339Nano, string(v))
			if err != nil || at.Before(olderThan) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return 0, ErrClosed
	}
	return removed, err
}
