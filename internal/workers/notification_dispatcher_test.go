package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures every delivered message.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
	err      error
}

func (n *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func (n *recordingNotifier) first() notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.messages[0]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestNotificationDispatcher_Delivers(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewNotificationDispatcher(notifier, 8, logger.Nop())
	d.Run()
	defer d.Shutdown()

	ok := d.Enqueue(notify.Message{
		Template:  notify.TemplateEmailVerification,
		Recipient: "john@example.com",
	})
	require.True(t, ok)

	waitFor(t, func() bool { return notifier.count() == 1 })
	assert.Equal(t, "john@example.com", notifier.first().Recipient)
}

func TestNotificationDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Dispatcher is never started, so the queue can only fill up.
	notifier := &recordingNotifier{}
	d := NewNotificationDispatcher(notifier, 2, logger.Nop())

	assert.True(t, d.Enqueue(notify.Message{Template: notify.TemplateAccountLocked, Recipient: "a@b.c"}))
	assert.True(t, d.Enqueue(notify.Message{Template: notify.TemplateAccountLocked, Recipient: "a@b.c"}))

	// Third message finds a full buffer and is dropped, not blocked on.
	done := make(chan bool, 1)
	go func() {
		done <- d.Enqueue(notify.Message{Template: notify.TemplateAccountLocked, Recipient: "a@b.c"})
	}()

	select {
	case accepted := <-done:
		assert.False(t, accepted)
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestNotificationDispatcher_DeliveryFailureDoesNotStopLoop(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	d := NewNotificationDispatcher(notifier, 8, logger.Nop())
	d.Run()
	defer d.Shutdown()

	d.Enqueue(notify.Message{Template: notify.TemplatePasswordReset, Recipient: "a@b.c"})
	d.Enqueue(notify.Message{Template: notify.TemplatePasswordReset, Recipient: "a@b.c"})

	// Both attempts happen even though the first one failed.
	waitFor(t, func() bool { return notifier.count() == 2 })
}

func TestNotificationDispatcher_ShutdownRejectsNewMessages(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewNotificationDispatcher(notifier, 8, logger.Nop())
	d.Run()

	d.Shutdown()
	d.Shutdown() // idempotent

	waitFor(t, func() bool {
		return !d.Enqueue(notify.Message{Template: notify.TemplateAccountLocked, Recipient: "a@b.c"})
	})
}

func TestNotificationDispatcher_ZeroQueueSizeGetsDefault(t *testing.T) {
	d := NewNotificationDispatcher(&recordingNotifier{}, 0, logger.Nop())
	assert.Equal(t, 128, cap(d.queue))
}
