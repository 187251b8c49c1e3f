package core

import "context"

// Notifier delivers a human-readable message to the configured recipient
// once a payment finalizes. Called exactly once per completed finish flow.
type Notifier interface {
	Send(ctx context.Context, message string) error
}
