package workers

import (
	"context"
	"sync"
	"time"

	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/notify"
)

const defaultSendTimeout = 30 * time.Second

// NotificationDispatcher decouples account operations from notification
// delivery. Enqueue never blocks the caller: when the buffer is full the
// message is dropped and logged, because no account operation may stall or
// fail on a slow mail server.
type NotificationDispatcher struct {
	notifier notify.Notifier
	queue    chan notify.Message
	logger   *logger.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewNotificationDispatcher constructs a dispatcher with a buffered queue of
// the given size.
func NewNotificationDispatcher(notifier notify.Notifier, queueSize int, log *logger.Logger) *NotificationDispatcher {
	if queueSize <= 0 {
		queueSize = 128
	}

	return &NotificationDispatcher{
		notifier: notifier,
		queue:    make(chan notify.Message, queueSize),
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Enqueue offers a message for delivery. Returns false when the queue is
// full or the dispatcher is already shut down; the message is dropped.
func (d *NotificationDispatcher) Enqueue(msg notify.Message) bool {
	select {
	case <-d.done:
		d.logger.Warn().Str("template", string(msg.Template)).Msg("dispatcher stopped, notification dropped")
		return false
	default:
	}

	select {
	case d.queue <- msg:
		return true
	default:
		d.logger.Warn().Str("template", string(msg.Template)).Msg("notification queue full, message dropped")
		return false
	}
}

// Run starts the delivery goroutine and returns immediately. Implements
// [Worker].
func (d *NotificationDispatcher) Run() {
	go d.loop()
}

func (d *NotificationDispatcher) loop() {
	for {
		select {
		case <-d.done:
			// drain whatever is still buffered
			for {
				select {
				case msg := <-d.queue:
					d.deliver(msg)
				default:
					return
				}
			}
		case msg := <-d.queue:
			d.deliver(msg)
		}
	}
}

func (d *NotificationDispatcher) deliver(msg notify.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSendTimeout)
	defer cancel()

	ctx = d.logger.WithContext(ctx)

	if err := d.notifier.Send(ctx, msg); err != nil {
		d.logger.Err(err).
			Str("template", string(msg.Template)).
			Str("recipient", msg.Recipient).
			Msg("notification delivery failed")
		return
	}

	d.logger.Debug().
		Str("template", string(msg.Template)).
		Str("recipient", msg.Recipient).
		Msg("notification delivered")
}

// Shutdown stops accepting new messages and lets the delivery loop drain
// the queue. Safe to call multiple times.
func (d *NotificationDispatcher) Shutdown() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
}
