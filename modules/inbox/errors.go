package inbox

import (
	"net/http"

	"github.com/dmitrymomot/lodgekit/handler"
)

var (
	ErrNoSession         = handler.NewHTTPError(http.StatusBadRequest, "session_required")
	ErrUnknownType       = handler.NewHTTPError(http.StatusUnprocessableEntity, "unknown_type")
	ErrTitleRequired     = handler.NewHTTPError(http.StatusUnprocessableEntity, "title_required")
	ErrInvalidLink       = handler.NewHTTPError(http.StatusUnprocessableEntity, "invalid_link")
	ErrStreamUnavailable = handler.NewHTTPError(http.StatusServiceUnavailable, "stream_unavailable")
)
