package app

import (
	"context"
	"time"
)

// Countdown drives a session's round timer from its own goroutine.
type Countdown struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartCountdown calls session.Tick every interval until the answer is revealed, ctx is canceled
// or Stop is called. onExpire runs once, on the countdown goroutine, when the timer reaches zero.
func StartCountdown(ctx context.Context, session *Session, interval time.Duration, onExpire func()) *Countdown {
	session.mustBeProvisioned()
	ctx, cancel := context.WithCancel(ctx)
	c := &Countdown{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if session.Tick() {
					if onExpire != nil {
						onExpire()
					}
					return
				}
			}
		}
	}()
	return c
}

// Stop cancels the countdown and waits for its goroutine to exit. It is safe to call more than once.
func (c *Countdown) Stop() {
	if c == nil {
		return
	}
	c.cancel()
	<-c.done
}

// Done is closed once the countdown goroutine has exited.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
