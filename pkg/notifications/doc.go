// Package notifications keeps the in-app notifications of member sessions and
// raises a toast whenever one is added.
//
// Notifications live only as long as the session that owns them. Each
// session gets its own Store; a Registry hands stores out by session id and
// discards them when the session closes, goes idle, or is evicted.
//
// # Store
//
// A Store keeps notifications newest first. Adding one assigns a fresh
// 9-character id, stamps the current time, and marks it unread:
//
//	store := notifications.NewStore(sessionID, notifications.WithToaster(feed))
//
//	n := store.Add(ctx, notifications.Input{
//	    Type:    notifications.TypeEvent,
//	    Title:   "Tenue",
//	    Message: "Next meeting moved to Thursday",
//	    Link:    "/agenda",
//	})
//
//	store.MarkAsRead(n.ID)
//	store.UnreadCount() // 0
//
// Operations on unknown ids are silent no-ops. The unread count is derived
// from the collection on every call and is never cached.
//
// # Toasts
//
// Every Add raises a Toast through the configured Toaster. Toast failures
// never fail Add: they are logged and counted, and the notification stays in
// the store. Available toasters:
//
//   - NoOpToaster drops toasts.
//   - Feed fans toasts out to in-process subscribers such as SSE streams.
//   - RedisToaster publishes toasts to Redis; a RedisRelay on every instance
//     feeds them into the local Feed.
//   - MultiToaster combines several of the above.
//
// # Metrics
//
// The package registers Prometheus collectors for added notifications,
// failed toasts, and open session stores.
package notifications
