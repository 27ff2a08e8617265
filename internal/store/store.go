// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Key prefixes for BadgerDB storage
const (
	itemKeyPrefix   = "item:"
	ratingKeyPrefix = "rating:"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("store is closed")

// Config configures the BadgerDB store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory; nothing survives a restart.
	InMemory bool

	// SyncWrites fsyncs every write before acknowledging it.
	SyncWrites bool

	// GCRatio is the value log discard ratio for RunGC. Default: 0.5.
	GCRatio float64
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("store path is required unless in_memory is set")
	}
	if c.GCRatio < 0 || c.GCRatio >= 1 {
		return fmt.Errorf("gc_ratio must be in [0,1), got %v", c.GCRatio)
	}
	return nil
}

// BadgerStore keeps the place catalog and user ratings in BadgerDB. It
// implements recommend.CatalogProvider and recommend.InteractionStore.
type BadgerStore struct {
	db     *badger.DB
	config Config
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

var (
	_ recommend.CatalogProvider  = (*BadgerStore)(nil)
	_ recommend.InteractionStore = (*BadgerStore)(nil)
)

// Open opens (or creates) the store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*BadgerStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}
	if cfg.GCRatio == 0 {
		cfg.GCRatio = 0.5
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logger = logger.With().Str("component", "store").Logger()
	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Store opened")

	return &BadgerStore{db: db, config: cfg, logger: logger}, nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Info().Msg("Store closed")
	return nil
}

// RunGC reclaims value log space until nothing more can be rewritten.
func (s *BadgerStore) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.config.InMemory {
		return nil
	}

	start := time.Now()
	var err error
	defer func() { metrics.RecordStoreOperation("gc", time.Since(start), err) }()

	for {
		gcErr := s.db.RunValueLogGC(s.config.GCRatio)
		if errors.Is(gcErr, badger.ErrNoRewrite) {
			return nil
		}
		if gcErr != nil {
			err = fmt.Errorf("run GC: %w", gcErr)
			return err
		}
	}
}

func (s *BadgerStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// observe records an operation's latency and outcome.
func observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(op, time.Since(start), err)
}
