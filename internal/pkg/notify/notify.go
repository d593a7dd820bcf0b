package notify

import "context"

// Notifier is the fire-and-forget notification sink. Send must never block
// the caller on a slow recipient and must never surface a delivery failure;
// failures are an operational logging concern only.
type Notifier interface {
	Send(ctx context.Context, text string)
}

// Noop is the disabled sink, used when no bot token is configured and as a
// test double.
type Noop struct{}

func (Noop) Send(context.Context, string) {}
