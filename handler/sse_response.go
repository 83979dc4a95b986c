package handler

import "net/http"

// SSEHandler runs for the lifetime of the stream and returns when the client
// goes away.
type SSEHandler func(stream StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusNotAcceptable, "stream_requires_datastar")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE answers with a long-lived datastar stream.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//	    for {
//	        select {
//	        case <-stream.Done():
//	            return nil
//	        case t := <-sub.C():
//	            if err := stream.SendComponent(views.Toast(t), handler.WithTarget("#toasts")); err != nil {
//	                return err
//	            }
//	        }
//	    }
//	})
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
