// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes using Go 1.22+ method patterns.

NewRouter wires the handlers with their dependencies (database, token
resolver, audit sink, config) and wraps every API route in request
logging:

	mux := router.NewRouter(db, resolver, sink, cfg)

Routes:

	GET  /health          → store ping
	POST /polls           → create poll (auth)
	GET  /polls           → list active polls with totals
	POST /polls/{id}/vote → cast vote (auth)
	GET  /polls/{id}/vote → live results (public)
*/
package router
