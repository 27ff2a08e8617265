// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package artifact loads the offline-trained scoring artifacts.

Two artifacts are required before the engine can serve personalized
results:

  - A dense n x n cosine similarity matrix stored as a NumPy .npy file
    (float64 or float32, C or Fortran order) together with a JSON index
    listing the n place IDs in matrix order.
  - A collaborative embedding model stored as JSON: user and item encoders
    mapping domain IDs to dense indices, factor matrices and optional biases.

Loader reads both concurrently and wraps the model in a circuit breaker when
configured. Every dimension disagreement is reported as
recommend.ErrArtifactShapeMismatch, which the server treats as fatal.
*/
package artifact
