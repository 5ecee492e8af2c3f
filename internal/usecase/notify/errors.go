package notify

import "errors"

var (
	// ErrNotificationDropped indicates the worker pool stayed full for longer
	// than the acquire timeout.
	ErrNotificationDropped = errors.New("notification dropped due to pool saturation")

	// ErrShuttingDown is returned by NotifyModeration after Shutdown was called.
	ErrShuttingDown = errors.New("notification service is shutting down")
)
