package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the ErrorHandler configured in Wrap, so it is logged and
// rendered like a binding failure.
func Error(err error) Response {
	return errorResponse{err: err}
}
