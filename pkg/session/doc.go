// Package session gives every browser an anonymous session id. The id scopes
// the member's notification store and toast stream; there is no login and no
// server-side session record.
//
// The id travels in the X-Session-ID header or the lodge_session cookie and is
// always a UUID. Middleware issues one when the request has none and stores it
// in the context:
//
//	mgr := session.NewFromConfig(cfg.Session, session.WithOnEnd(
//	    func(_ context.Context, id string) { registry.Close(id) },
//	))
//	r.Use(mgr.Middleware)
//
//	id := session.MustIDFromContext(r.Context())
//
// LoggerExtractor adds the id to log records as session_id.
package session
