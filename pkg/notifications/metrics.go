package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// notificationsAdded counts notifications added to session stores by type.
	notificationsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lodge_notifications_added_total",
			Help: "Total number of notifications added to session stores",
		},
		[]string{"type"},
	)

	// toastsFailed counts toasts that could not be delivered.
	toastsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lodge_toasts_failed_total",
			Help: "Total number of toasts the configured backend failed to deliver",
		},
	)

	// activeSessions tracks session stores currently held by registries.
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lodge_notification_sessions",
			Help: "Number of session notification stores currently open",
		},
	)

	// sessionsClosed counts discarded session stores by reason (closed|idle|evicted).
	sessionsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lodge_notification_sessions_closed_total",
			Help: "Total number of session notification stores discarded",
		},
		[]string{"reason"},
	)
)
