// Package messagequeue provides the grouped, ordered, at-least-once queue that
// carries registrations and chain facts to the consumer.
//
// Within one group messages are delivered in send order and never visible to
// two consumers at once. Different groups are independent.
package messagequeue

import (
	"context"
	"errors"
)

//go:generate mockgen -source=queue.go -destination=../mocks/messagequeue.go -package=mocks -mock_names=MessageQueue=MockMessageQueue

// ErrUnknownReceipt is returned by Delete for a receipt the queue does not hold
var ErrUnknownReceipt = errors.New("unknown receipt")

// MessageQueue is the queue capability used by the listener, the backfill worker and the consumer
type MessageQueue interface {
	// Send enqueues msg into group. A second send with the same dedupID
	// inside the backend's deduplication window is dropped.
	Send(ctx context.Context, msg *Message, dedupID, group string) error
	// Poll returns visible messages keyed by group, each group in send order.
	// A group with a message in flight is not returned.
	Poll(ctx context.Context) (map[string][]Delivery, error)
	// Delete acknowledges a delivery by its receipt
	Delete(ctx context.Context, receipt string) error
}

// Delivery is one received message.
// Err is set when the body could not be decoded; Message is nil in that case.
type Delivery struct {
	MessageID string
	Message   *Message
	Receipt   string
	Err       error
}

func newDelivery(id, receipt string, body []byte) Delivery {
	d := Delivery{MessageID: id, Receipt: receipt}

	msg, err := Decode(body)
	if err == nil {
		err = msg.Validate()
	}
	if err != nil {
		d.Err = err
		return d
	}

	d.Message = msg
	return d
}
