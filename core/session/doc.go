// Package session stores per-client key-value bags keyed by a random identifier.
//
// A Store creates sessions and looks them up by identifier. MemoryStore is the
// default backend and hands out live references; backends that persist copies
// (see the redisstore and pgstore subpackages) also implement Saver so the
// dispatcher can write changes back after a handler returns.
//
//	store := session.NewMemoryStore(session.WithTTL(24 * time.Hour))
//	g.Go(store.Run(ctx))
//
//	id, err := store.Create(ctx)
//	s, err := store.Get(ctx, id)
//	s.Set("visits", 1)
//
// Identifiers are 32 characters from [A-Za-z0-9] by default. Collisions are not
// checked. Get returns ErrNotFound for unknown or expired identifiers.
package session
