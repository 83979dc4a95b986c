// Package handler binds requests into typed structs and renders typed
// responses: the JSON envelope for scripts, templ fragments for plain
// browser requests, and datastar patches over SSE for datastar actions.
//
//	type markRequest struct {
//	    ID string `path:"id"`
//	}
//
//	r.Post("/{id}/read", handler.Wrap(func(ctx handler.Context, req markRequest) handler.Response {
//	    store.MarkAsRead(req.ID)
//	    return handler.Empty()
//	}, handler.WithBinders(handler.BindPath(chi.URLParam))))
//
// Errors returned from binders or Render go to the ErrorHandler. HTTPError
// keeps its status code and its key doubles as a translation key.
package handler
