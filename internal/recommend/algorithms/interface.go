// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package algorithms

import (
	"context"
	"time"
)

// base carries identity shared by all scorers.
type base struct {
	name     string
	version  string
	loadedAt time.Time
}

func newBase(name, version string) base {
	return base{name: name, version: version, loadedAt: time.Now()}
}

// Name returns the scorer identifier.
func (b *base) Name() string {
	return b.name
}

// Version returns the artifact version the scorer was built from.
func (b *base) Version() string {
	return b.version
}

// LoadedAt returns when the scorer was constructed.
func (b *base) LoadedAt() time.Time {
	return b.loadedAt
}

// contextCancelled reports whether ctx is done.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
