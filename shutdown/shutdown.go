// Package shutdown cancels a context on interrupt or termination signals.
package shutdown

import (
	"context"
	"os/signal"
)

// Context returns ctx wrapped so it is cancelled on the platform's stop
// signals. The returned cancel func releases the signal handler.
func Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, signals...)
}
