package inbox

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/lodgekit/handler"
	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

// stream holds a datastar connection open and appends a toast plus a fresh
// badge for every notification added to the session.
func (m *Module) stream(ctx handler.Context, _ struct{}) handler.Response {
	if m.feed == nil {
		return handler.Error(ErrStreamUnavailable)
	}

	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		sub := m.feed.Subscribe(stream, store.SessionID())
		defer sub.Close()

		started := time.Now()
		m.logger.LogAttrs(stream, slog.LevelDebug, "Toast stream opened", logger.Component("inbox"))
		defer func() {
			m.logger.LogAttrs(stream, slog.LevelDebug, "Toast stream closed",
				logger.Component("inbox"),
				logger.Duration(time.Since(started)),
			)
		}()

		if err := stream.SendComponent(Badge(store.UnreadCount())); err != nil {
			return err
		}

		for {
			select {
			case <-stream.Done():
				return nil
			case t, ok := <-sub.C():
				if !ok {
					return nil
				}
				err := stream.SendMultiple(
					handler.Patch(Toast(t), handler.WithTarget("#"+ToastsID), handler.WithPatchMode(handler.PatchAppend)),
					handler.Patch(Badge(store.UnreadCount())),
				)
				if err != nil {
					return err
				}
			}
		}
	})
}
