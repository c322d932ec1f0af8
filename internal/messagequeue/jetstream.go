package messagequeue

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/logger"
)

// JetStreamConfig holds the configuration for the NATS JetStream backend
type JetStreamConfig struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	ConsumerName   string
	ConnectionName string
	MaxReconnects  int
	ReconnectWait  time.Duration
	AckWait        time.Duration
	MaxDeliver     int
	BatchSize      int
	FetchWait      time.Duration
	// DedupWindow is the stream's duplicate tracking window
	DedupWindow time.Duration
}

type jetStreamEntry struct {
	msg      adapter.Message
	group    string
	seq      uint64
	deadline time.Time
	// lapsed marks a delivery whose ack deadline passed; its group stays
	// blocked until JetStream redelivers it or a second ack window passes
	lapsed bool
}

// JetStreamQueue is a MessageQueue over a JetStream stream with one subject per group.
// JetStream has no notion of message groups, so per-group in-flight blocking is
// enforced here: a message fetched for a group that still has an unacknowledged
// delivery is held locally, kept alive with in-progress acks, and handed out in
// stream order once the group frees up.
type JetStreamQueue struct {
	nc       adapter.NatsConn
	js       adapter.JetStream
	consumer adapter.Consumer
	clock    adapter.Clock
	cfg      JetStreamConfig

	mu       sync.Mutex
	inFlight map[string]*jetStreamEntry
	held     map[string][]*jetStreamEntry
}

// NewJetStreamQueue connects to NATS and ensures the stream and pull consumer exist
func NewJetStreamQueue(ctx context.Context, cfg JetStreamConfig, natsJS adapter.NatsJetStream, clock adapter.Clock) (*JetStreamQueue, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	subjects := cfg.SubjectPrefix + ".>"
	err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{subjects},
		Retention:  jetstream.WorkQueuePolicy,
		Storage:    jetstream.FileStorage,
		Duplicates: cfg.DedupWindow,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	consumer, err := js.CreateOrUpdateConsumer(ctx, cfg.StreamName, jetstream.ConsumerConfig{
		Durable:       cfg.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       cfg.AckWait,
		MaxDeliver:    cfg.MaxDeliver,
		FilterSubject: subjects,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	logger.InfoCtx(ctx, "JetStream queue ready",
		zap.String("stream", cfg.StreamName),
		zap.String("consumer", cfg.ConsumerName),
		zap.String("url", nc.ConnectedUrl()))

	return &JetStreamQueue{
		nc:       nc,
		js:       js,
		consumer: consumer,
		clock:    clock,
		cfg:      cfg,
		inFlight: make(map[string]*jetStreamEntry),
		held:     make(map[string][]*jetStreamEntry),
	}, nil
}

func (q *JetStreamQueue) Send(ctx context.Context, msg *Message, dedupID, group string) error {
	if err := validSubjectToken(group); err != nil {
		return err
	}

	body, err := Encode(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	_, err = q.js.Publish(ctx, q.subject(group), body, jetstream.WithMsgID(dedupID))
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (q *JetStreamQueue) Poll(ctx context.Context) (map[string][]Delivery, error) {
	msgs, err := q.consumer.Fetch(q.cfg.BatchSize, q.cfg.FetchWait)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.clock.Now()
	q.expire(now)

	for _, m := range msgs {
		meta, err := m.Metadata()
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to read message metadata: %w", err))
			if err := m.Term(); err != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("failed to terminate message: %w", err))
			}
			continue
		}
		q.hold(m, meta.Sequence.Stream)
	}

	busy := make(map[string]bool)
	for _, e := range q.inFlight {
		busy[e.group] = true
	}

	out := make(map[string][]Delivery)
	for group, entries := range q.held {
		if busy[group] {
			q.touch(ctx, group, entries)
			continue
		}

		delete(q.held, group)
		for _, e := range entries {
			receipt := strconv.FormatUint(e.seq, 10)
			e.deadline = now.Add(q.cfg.AckWait)
			q.inFlight[receipt] = e

			id := e.msg.Headers().Get(jetstream.MsgIDHeader)
			if id == "" {
				id = receipt
			}
			out[group] = append(out[group], newDelivery(id, receipt, e.msg.Data()))
		}
	}

	return out, nil
}

// hold records a fetched message in its group's stream-ordered hold list.
// A redelivery of a held or in-flight message replaces the stale handle.
func (q *JetStreamQueue) hold(m adapter.Message, seq uint64) {
	receipt := strconv.FormatUint(seq, 10)
	if e, ok := q.inFlight[receipt]; ok {
		if !e.lapsed {
			e.msg = m
			return
		}
		delete(q.inFlight, receipt)
	}

	group := strings.TrimPrefix(m.Subject(), q.cfg.SubjectPrefix+".")
	entries := q.held[group]
	for _, e := range entries {
		if e.seq == seq {
			e.msg = m
			return
		}
	}

	pos := sort.Search(len(entries), func(i int) bool { return entries[i].seq > seq })
	entries = append(entries, nil)
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = &jetStreamEntry{msg: m, group: group, seq: seq}
	q.held[group] = entries
}

// touch resets the ack timer of held messages so they are not redelivered
// while their group is busy. A message that cannot be touched is released
// and comes back through normal redelivery.
func (q *JetStreamQueue) touch(ctx context.Context, group string, entries []*jetStreamEntry) {
	kept := entries[:0]
	for _, e := range entries {
		if err := e.msg.InProgress(); err != nil {
			logger.WarnCtx(ctx, "Failed to extend held message",
				zap.String("group", group),
				zap.Uint64("sequence", e.seq),
				zap.Error(err))
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		delete(q.held, group)
		return
	}
	q.held[group] = kept
}

func (q *JetStreamQueue) Delete(ctx context.Context, receipt string) error {
	q.mu.Lock()
	f, ok := q.inFlight[receipt]
	delete(q.inFlight, receipt)
	q.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownReceipt, receipt)
	}

	if err := f.msg.Ack(); err != nil {
		return fmt.Errorf("failed to ack message: %w", err)
	}
	return nil
}

// Close closes the NATS connection
func (q *JetStreamQueue) Close() {
	if q.nc != nil {
		q.nc.Close()
	}
}

func (q *JetStreamQueue) subject(group string) string {
	return q.cfg.SubjectPrefix + "." + group
}

// expire marks deliveries whose ack deadline passed as lapsed and forgets
// lapsed deliveries that JetStream did not bring back within another window
func (q *JetStreamQueue) expire(now time.Time) {
	for receipt, e := range q.inFlight {
		if now.Before(e.deadline) {
			continue
		}
		if e.lapsed {
			delete(q.inFlight, receipt)
			continue
		}
		e.lapsed = true
		e.deadline = now.Add(q.cfg.AckWait)
	}
}

func validSubjectToken(group string) error {
	if group == "" || strings.ContainsAny(group, ".*> \t\r\n") {
		return fmt.Errorf("invalid group %q", group)
	}
	return nil
}
