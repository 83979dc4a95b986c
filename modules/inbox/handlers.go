package inbox

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/lodgekit/handler"
	"github.com/dmitrymomot/lodgekit/pkg/logger"
	"github.com/dmitrymomot/lodgekit/pkg/notifications"
)

type listResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
	UnreadCount   int                          `json:"unread_count"`
}

type countResponse struct {
	UnreadCount int `json:"unread_count"`
}

type addRequest struct {
	Type    string `json:"type" form:"type"`
	Title   string `json:"title" form:"title"`
	Message string `json:"message" form:"message"`
	Link    string `json:"link" form:"link"`
}

// input validates the request. Links may be relative or http(s) only.
func (req addRequest) input() (notifications.Input, error) {
	typ, err := notifications.ParseType(strings.TrimSpace(req.Type))
	if err != nil {
		return notifications.Input{}, errors.Join(ErrUnknownType, err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return notifications.Input{}, ErrTitleRequired
	}

	link := strings.TrimSpace(req.Link)
	if link != "" {
		u, err := url.Parse(link)
		if err != nil {
			return notifications.Input{}, errors.Join(ErrInvalidLink, err)
		}
		if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
			return notifications.Input{}, ErrInvalidLink
		}
	}

	return notifications.Input{
		Type:    typ,
		Title:   title,
		Message: strings.TrimSpace(req.Message),
		Link:    link,
	}, nil
}

type idRequest struct {
	ID string `path:"id"`
}

// refresh answers a mutation: datastar gets the re-rendered panel, other
// clients get 204.
func (m *Module) refresh(ctx handler.Context, store *notifications.Store) handler.Response {
	if handler.IsDataStar(ctx.Request()) || handler.WantsHTML(ctx.Request()) {
		return handler.Templ(Panel(store.Notifications(), store.UnreadCount(), m.labels(ctx)))
	}
	return handler.Empty()
}

func (m *Module) list(ctx handler.Context, _ struct{}) handler.Response {
	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}

	items, unread := store.Notifications(), store.UnreadCount()
	if handler.IsDataStar(ctx.Request()) || handler.WantsHTML(ctx.Request()) {
		return handler.Templ(Panel(items, unread, m.labels(ctx)))
	}
	return handler.JSON(listResponse{Notifications: items, UnreadCount: unread})
}

func (m *Module) add(ctx handler.Context, req addRequest) handler.Response {
	in, err := req.input()
	if err != nil {
		return handler.Error(err)
	}

	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}

	n := store.Add(ctx, in)
	m.logger.LogAttrs(ctx, slog.LevelDebug, "Notification added",
		logger.Component("inbox"),
		logger.NotificationID(n.ID),
		slog.String("type", string(n.Type)),
	)

	if handler.IsDataStar(ctx.Request()) || handler.WantsHTML(ctx.Request()) {
		return m.refresh(ctx, store)
	}
	return handler.JSON(n, handler.WithJSONStatus(http.StatusCreated))
}

func (m *Module) unreadCount(ctx handler.Context, _ struct{}) handler.Response {
	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}

	if handler.IsDataStar(ctx.Request()) {
		return handler.Templ(Badge(store.UnreadCount()))
	}
	return handler.JSON(countResponse{UnreadCount: store.UnreadCount()})
}

func (m *Module) markAllRead(ctx handler.Context, _ struct{}) handler.Response {
	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}
	store.MarkAllAsRead()
	return m.refresh(ctx, store)
}

func (m *Module) markRead(ctx handler.Context, req idRequest) handler.Response {
	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}
	store.MarkAsRead(req.ID)
	return m.refresh(ctx, store)
}

func (m *Module) delete(ctx handler.Context, req idRequest) handler.Response {
	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}
	store.Delete(req.ID)
	return m.refresh(ctx, store)
}

func (m *Module) clear(ctx handler.Context, _ struct{}) handler.Response {
	store, err := m.store(ctx)
	if err != nil {
		return handler.Error(err)
	}
	store.Clear()
	return m.refresh(ctx, store)
}
