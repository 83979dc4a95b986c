package inbox

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/lodgekit/pkg/notifications"
)

// DOM ids patched by datastar.
const (
	PanelID  = "notifications"
	BadgeID  = "unread-badge"
	ToastsID = "toasts"
)

// Labels resolves display text for the views. Every method must return
// something printable even when the translation is missing.
type Labels interface {
	Label(key, fallback string) string
	Since(t time.Time) string
}

func write(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// Badge renders the unread counter. It is hidden when nothing is unread.
func Badge(count int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := "badge"
		if count == 0 {
			class += " badge--hidden"
		}
		return write(w, `<span id="%s" class="%s" data-count="%d">%d</span>`, BadgeID, class, count, count)
	})
}

// Panel renders the whole notification list.
func Panel(items []notifications.Notification, unread int, l Labels) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<section id="%s" class="notifications" aria-label="%s">`, PanelID, esc(l.Label("notifications.title", "Notifications"))); err != nil {
			return err
		}
		if err := write(w, `<header><h2>%s</h2>`, esc(l.Label("notifications.title", "Notifications"))); err != nil {
			return err
		}
		if err := Badge(unread).Render(ctx, w); err != nil {
			return err
		}
		if unread > 0 {
			if err := write(w, `<button type="button" data-on-click="@post('/notifications/read-all')">%s</button>`,
				esc(l.Label("notifications.mark_all_read", "Mark all as read"))); err != nil {
				return err
			}
		}
		if len(items) > 0 {
			if err := write(w, `<button type="button" data-on-click="@delete('/notifications')">%s</button>`,
				esc(l.Label("notifications.clear", "Clear all"))); err != nil {
				return err
			}
		}
		if err := write(w, `</header>`); err != nil {
			return err
		}

		if len(items) == 0 {
			return write(w, `<p class="notifications__empty">%s</p></section>`, esc(l.Label("notifications.empty", "No notifications")))
		}

		if err := write(w, `<ul class="notifications__list">`); err != nil {
			return err
		}
		for _, n := range items {
			if err := Item(n, l).Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, `</ul></section>`)
	})
}

// Item renders one notification row.
func Item(n notifications.Notification, l Labels) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		state := "unread"
		if n.Read {
			state = "read"
		}
		if err := write(w, `<li id="notification-%s" class="notification notification--%s notification--%s">`, esc(n.ID), esc(string(n.Type)), state); err != nil {
			return err
		}
		if err := write(w, `<span class="notification__type">%s</span><strong>%s</strong><p>%s</p><time datetime="%s">%s</time>`,
			esc(l.Label("notifications.types."+string(n.Type), "")),
			esc(n.Title),
			esc(n.Message),
			n.Timestamp.UTC().Format(time.RFC3339),
			esc(l.Since(n.Timestamp)),
		); err != nil {
			return err
		}
		if n.HasLink() {
			if err := write(w, `<a href="%s">%s</a>`, esc(n.Link), esc(l.Label("notifications.open_link", "Open"))); err != nil {
				return err
			}
		}
		if !n.Read {
			if err := write(w, `<button type="button" data-on-click="@post('/notifications/%s/read')">%s</button>`,
				esc(n.ID), esc(l.Label("notifications.mark_read", "Mark as read"))); err != nil {
				return err
			}
		}
		return write(w, `<button type="button" data-on-click="@delete('/notifications/%s')">%s</button></li>`,
			esc(n.ID), esc(l.Label("notifications.delete", "Delete")))
	})
}

// Toast renders the transient alert appended to the toast container.
func Toast(t notifications.Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := write(w, `<div id="toast-%s" class="toast toast--%s" role="status"><strong>%s</strong>`,
			esc(t.NotificationID), esc(string(t.Type)), esc(t.Title)); err != nil {
			return err
		}
		if t.Message != "" {
			if err := write(w, `<p>%s</p>`, esc(t.Message)); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// ErrorToast renders failed datastar actions in the toast container.
func ErrorToast(message, kind, requestID string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w, `<div class="toast toast--%s" role="alert" data-request-id="%s"><p>%s</p></div>`,
			esc(kind), esc(requestID), esc(message))
	})
}
