package notifications

import "errors"

var (
	// ErrInvalidType is returned when a raw value is not a known notification type.
	ErrInvalidType = errors.New("invalid notification type")

	// ErrEmptySessionID is returned when a store is requested without a session id.
	ErrEmptySessionID = errors.New("session id is required")

	// ErrFeedClosed is returned when a toast is pushed into a closed feed.
	ErrFeedClosed = errors.New("toast feed is closed")

	// ErrFailedToEncodeToast is returned when a toast cannot be serialized for the wire.
	ErrFailedToEncodeToast = errors.New("failed to encode toast")

	// ErrFailedToDecodeToast is returned when a payload from the wire is not a toast.
	ErrFailedToDecodeToast = errors.New("failed to decode toast")

	// ErrFailedToPublishToast is returned when the toast could not be published to Redis.
	ErrFailedToPublishToast = errors.New("failed to publish toast")
)
