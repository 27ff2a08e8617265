// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

func itemKey(id recommend.ItemID) []byte {
	return []byte(fmt.Sprintf("%s%020d", itemKeyPrefix, id))
}

// AllItems returns every catalog place in ID order.
func (s *BadgerStore) AllItems(ctx context.Context) (items []recommend.Item, err error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	defer func(start time.Time) { observe("all_items", start, err) }(time.Now())

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var item recommend.Item
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("decode item %s: %w", it.Item().Key(), err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Item returns one place or recommend.ErrItemNotFound.
func (s *BadgerStore) Item(ctx context.Context, id recommend.ItemID) (item recommend.Item, err error) {
	if err := s.checkOpen(); err != nil {
		return recommend.Item{}, err
	}
	defer func(start time.Time) { observe("item", start, err) }(time.Now())

	err = s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("place %d: %w", id, recommend.ErrItemNotFound)
		}
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	return item, err
}

// PutItems inserts or replaces places in one transaction batch.
func (s *BadgerStore) PutItems(ctx context.Context, items []recommend.Item) (err error) {
	if err := s.checkOpen(); err != nil {
		return err
	}
	defer func(start time.Time) { observe("put_items", start, err) }(time.Now())

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if items[i].ID <= 0 {
			return fmt.Errorf("place %q has invalid id %d", items[i].Name, items[i].ID)
		}
		data, err := json.Marshal(items[i])
		if err != nil {
			return fmt.Errorf("marshal item: %w", err)
		}
		if err := wb.Set(itemKey(items[i].ID), data); err != nil {
			return fmt.Errorf("set item: %w", err)
		}
	}
	return wb.Flush()
}

// CountItems returns the catalog size.
func (s *BadgerStore) CountItems(ctx context.Context) (int, error) {
	return s.countPrefix(ctx, []byte(itemKeyPrefix))
}

// Seed loads places from a JSON array when the catalog is empty. It returns
// the number of places written, which is 0 for a non-empty catalog.
func (s *BadgerStore) Seed(ctx context.Context, r io.Reader) (int, error) {
	n, err := s.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug().Int("places", n).Msg("Catalog already populated, skipping seed")
		return 0, nil
	}

	var items []recommend.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return 0, fmt.Errorf("decode seed catalog: %w", err)
	}
	if err := s.PutItems(ctx, items); err != nil {
		return 0, err
	}

	s.logger.Info().Int("places", len(items)).Msg("Seeded catalog")
	return len(items), nil
}

// SeedFile is Seed reading from path.
func (s *BadgerStore) SeedFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed catalog: %w", err)
	}
	defer f.Close()
	return s.Seed(ctx, f)
}

func (s *BadgerStore) countPrefix(ctx context.Context, prefix []byte) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", prefix, err)
	}
	return count, nil
}
