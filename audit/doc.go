// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit records who did what, on a best-effort basis.

Sink is injected into handlers rather than accessed through a global,
so tests can swap in Nop and the core has no static mutable state:

	sink := audit.NewStore(db)
	err := sink.Record(ctx, audit.Event{
		Type:    audit.EventPollCreated,
		ActorID: user.ID,
		PollID:  poll.ID,
	})

Callers log Record failures and move on; observability never blocks the
primary operation.
*/
package audit
