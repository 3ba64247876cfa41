package hotkey

import (
	"context"

	"mnemo/dispatch"
)

// Handler consumes key events one at a time.
type Handler interface {
	HandleKey(ev dispatch.Event) bool
}

// Pump feeds every event from src to h on the calling goroutine, so h never
// sees two events at once. It returns when ctx is done or src's channel is
// closed. onFired, if non-nil, is called after each event that dispatched.
func Pump(ctx context.Context, src Source, h Handler, onFired func(dispatch.Event)) error {
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.HandleKey(ev) && onFired != nil {
				onFired(ev)
			}
		}
	}
}
