// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Ratings are keyed rating:{user}:{item} so one user's ratings share a prefix
// and a re-rating overwrites the earlier value.
func ratingUserPrefix(user recommend.UserID) []byte {
	return []byte(fmt.Sprintf("%s%020d:", ratingKeyPrefix, user))
}

func ratingKey(user recommend.UserID, item recommend.ItemID) []byte {
	return []byte(fmt.Sprintf("%s%020d:%020d", ratingKeyPrefix, user, item))
}

// AllInteractions returns every stored rating.
func (s *BadgerStore) AllInteractions(ctx context.Context) (out []recommend.Interaction, err error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	defer func(start time.Time) { observe("all_interactions", start, err) }(time.Now())
	return s.scanRatings(ctx, []byte(ratingKeyPrefix))
}

// UserInteractions returns the ratings of one user in place ID order.
func (s *BadgerStore) UserInteractions(ctx context.Context, user recommend.UserID) (out []recommend.Interaction, err error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	defer func(start time.Time) { observe("user_interactions", start, err) }(time.Now())
	return s.scanRatings(ctx, ratingUserPrefix(user))
}

// CountUserInteractions counts a user's rated places without decoding values.
func (s *BadgerStore) CountUserInteractions(ctx context.Context, user recommend.UserID) (n int, err error) {
	defer func(start time.Time) { observe("count_user_interactions", start, err) }(time.Now())
	return s.countPrefix(ctx, ratingUserPrefix(user))
}

// UpsertInteraction stores a rating, replacing the user's earlier rating of
// the same place.
func (s *BadgerStore) UpsertInteraction(ctx context.Context, in recommend.Interaction) (err error) {
	if err := s.checkOpen(); err != nil {
		return err
	}
	defer func(start time.Time) { observe("upsert_interaction", start, err) }(time.Now())

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ratingKey(in.UserID, in.ItemID), data)
	})
	if err != nil {
		return fmt.Errorf("set rating: %w", err)
	}

	metrics.RatingsStored.Inc()
	return nil
}

func (s *BadgerStore) scanRatings(ctx context.Context, prefix []byte) ([]recommend.Interaction, error) {
	var out []recommend.Interaction

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var in recommend.Interaction
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &in)
			}); err != nil {
				s.logger.Warn().Err(err).Str("key", string(it.Item().Key())).Msg("Skipping undecodable rating")
				continue
			}
			out = append(out, in)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return out, nil
}
