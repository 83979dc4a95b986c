// Package inbox is the HTTP surface of a member's notifications.
//
// Every route works on the store of the session found in the request
// context. Script clients get the JSON envelope; datastar actions and
// browser requests get the re-rendered panel. GET /stream keeps a datastar
// connection open and appends a toast to #toasts whenever a notification
// is added to the session, on this instance or, with the Redis relay, on
// any other.
//
//	r.Group(func(r chi.Router) {
//	    r.Use(sessions.Middleware, i18n.Middleware(langs, "en"))
//	    r.Mount("/notifications", inbox.New(registry,
//	        inbox.WithFeed(feed),
//	        inbox.WithTranslator(tr),
//	    ).Handle())
//	})
package inbox
