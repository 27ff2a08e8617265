// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package supervisor runs the service's long-lived components under a
suture/v4 supervision tree.

	wayfarer (root)
	├── data-layer     store GC
	├── engine-layer   artifact loader (one-shot), cache janitor
	└── api-layer      HTTP server

Failed services restart with exponential backoff. The artifact loader
returns suture.ErrDoNotRestart once resources are published and
suture.ErrTerminateSupervisorTree when an artifact does not match the
catalog, which stops the process instead of serving wrong scores.

Supervisor events are logged through sutureslog, fed by
logging.NewSlogLogger so they share the zerolog output.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())
	tree.AddEngineService(services.NewArtifactService(loader, engine, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
