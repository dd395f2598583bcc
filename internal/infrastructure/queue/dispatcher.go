package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/api/metrics"
	"github.com/codeblaze/portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// Dispatcher routes outbound mail to a fixed set of workers using consistent
// hashing on the recipient, so one recipient's mails leave in enqueue order.
type Dispatcher struct {
	workers []chan ports.Mail
	mailer  ports.Mailer
	log     zerolog.Logger

	// stopped is closed once the context passed to Start is done.
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Mail, numWorkers),
		mailer:  mailer,
		log:     log,
		stopped: make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Mail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// and from then on Enqueue drops mail instead of waiting for a reader.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.stopOnce.Do(func() { close(d.stopped) })
	}()
}

// Enqueue hands a mail to the worker responsible for its recipient.
// The call blocks only while that worker's buffer is full and the
// dispatcher is still running.
func (d *Dispatcher) Enqueue(m ports.Mail) {
	select {
	case <-d.stopped:
		d.drop(m)
		return
	default:
	}

	idx := d.shardIndex(m.To)
	select {
	case d.workers[idx] <- m:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	case <-d.stopped:
		d.drop(m)
	}
}

func (d *Dispatcher) drop(m ports.Mail) {
	metrics.MailSentTotal.WithLabelValues(m.Category, "dropped").Inc()
	d.log.Warn().Str("category", m.Category).Msg("mail dropped, dispatcher stopped")
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(recipient)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Mail) {
	depth := metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, m)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, m ports.Mail) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.mailer.Send(sendCtx, m)
	metrics.MailSendDuration.WithLabelValues(m.Category).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.MailSentTotal.WithLabelValues(m.Category, "failed").Inc()
		d.log.Error().Err(err).
			Str("category", m.Category).
			Int("worker_id", id).
			Msg("mail delivery failed")
		return
	}
	metrics.MailSentTotal.WithLabelValues(m.Category, "sent").Inc()
}
