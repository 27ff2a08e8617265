// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package store persists the place catalog and user ratings in BadgerDB.

# Key Layout

	item:{id}                 JSON recommend.Item
	rating:{user}:{item}      JSON recommend.Interaction

IDs are zero-padded to 20 digits so prefix iteration returns places and
ratings in ID order and one user's ratings can be scanned with a single
prefix seek. Writing a rating for a (user, place) pair that already exists
replaces it.

# Usage

	st, err := store.Open(store.Config{Path: "/data/wayfarer"}, logger)
	if err != nil {
	    return err
	}
	defer st.Close()

	if _, err := st.SeedFile(ctx, "/data/places.json"); err != nil {
	    return err
	}

BadgerStore satisfies recommend.CatalogProvider and
recommend.InteractionStore and is passed to recommend.NewEngine directly.
*/
package store
