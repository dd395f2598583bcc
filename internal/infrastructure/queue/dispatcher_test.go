package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/core/ports"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.Mail
	err  error
	done chan struct{}
	want int
}

func newRecordingMailer(want int, err error) *recordingMailer {
	return &recordingMailer{done: make(chan struct{}), want: want, err: err}
}

func (m *recordingMailer) Send(_ context.Context, mail ports.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	if len(m.sent) == m.want {
		close(m.done)
	}
	return m.err
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting")
	}
}

func TestDispatcher_DeliversInOrderPerRecipient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := newRecordingMailer(6, nil)
	d := NewDispatcher(3, mailer, zerolog.Nop())
	d.Start(ctx)

	for _, subject := range []string{"1", "2", "3"} {
		d.Enqueue(ports.Mail{To: "a@example.com", Subject: subject, Category: "otp"})
		d.Enqueue(ports.Mail{To: "b@example.com", Subject: subject, Category: "otp"})
	}
	waitFor(t, mailer.done)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	var forA []string
	for _, m := range mailer.sent {
		if m.To == "a@example.com" {
			forA = append(forA, m.Subject)
		}
	}
	if len(forA) != 3 || forA[0] != "1" || forA[1] != "2" || forA[2] != "3" {
		t.Fatalf("expected ordered delivery for a@example.com, got %v", forA)
	}
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := newRecordingMailer(2, errors.New("provider down"))
	d := NewDispatcher(1, mailer, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.Mail{To: "a@example.com", Category: "otp"})
	d.Enqueue(ports.Mail{To: "a@example.com", Category: "otp"})
	waitFor(t, mailer.done)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, newRecordingMailer(0, nil), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex("A@Example.com") != d.shardIndex("a@example.com") {
		t.Fatal("recipient casing must not change the shard")
	}
}

func TestDispatcher_EnqueueAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mailer := newRecordingMailer(-1, nil)
	d := NewDispatcher(1, mailer, zerolog.Nop())
	d.Start(ctx)
	waitFor(t, d.stopped)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(ports.Mail{To: "a@example.com", Category: "otp"})
		}
	}()
	waitFor(t, done)

	if n := len(d.workers[0]); n != 0 {
		t.Fatalf("expected stopped dispatcher to drop mail, %d buffered", n)
	}
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no deliveries after stop, got %d", len(mailer.sent))
	}
}
