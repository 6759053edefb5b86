package email

import (
	"context"
	"sync"
	"time"

	"github.com/mpalashb/secureprime-digital-agency/pkg/logger"
)

// Dispatcher sends notifications in the background. A send never reports
// back to the caller: failures end up in the log.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{sender: sender, timeout: timeout}
}

// Dispatch starts one goroutine per message. ctx only contributes its values;
// cancellation of the originating request does not stop the send.
func (d *Dispatcher) Dispatch(ctx context.Context, form string, msgs ...Message) {
	base := context.WithoutCancel(ctx)
	for _, msg := range msgs {
		d.wg.Add(1)
		go func(msg Message) {
			defer d.wg.Done()
			d.send(base, form, msg)
		}(msg)
	}
}

func (d *Dispatcher) send(ctx context.Context, form string, msg Message) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	id, err := d.sender.Send(ctx, msg)
	if err != nil {
		logger.Log.Error("Notification failed",
			"form", form,
			"provider", d.sender.Provider(),
			"subject", msg.Subject,
			"error", err,
		)
		return
	}
	logger.Log.Info("Notification sent",
		"form", form,
		"provider", d.sender.Provider(),
		"message_id", id,
	)
}

// Wait blocks until in-flight sends finish or ctx is done
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
