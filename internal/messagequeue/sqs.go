package messagequeue

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/logger"
)

// SQSConfig configures the SQS FIFO backend
type SQSConfig struct {
	QueueURL          string
	MaxMessages       int64
	WaitTime          time.Duration
	VisibilityTimeout time.Duration
}

// SQSQueue is a MessageQueue over an SQS FIFO queue.
// Ordering and per-group in-flight blocking are provided by SQS itself.
// Dead letters are handled by the queue's redrive policy.
type SQSQueue struct {
	client adapter.SQS
	cfg    SQSConfig
}

// NewSQSQueue creates an SQS-backed queue
func NewSQSQueue(cfg SQSConfig, client adapter.SQS) *SQSQueue {
	if cfg.MaxMessages <= 0 || cfg.MaxMessages > 10 {
		cfg.MaxMessages = 10
	}
	return &SQSQueue{client: client, cfg: cfg}
}

func (q *SQSQueue) Send(ctx context.Context, msg *Message, dedupID, group string) error {
	body, err := Encode(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	_, err = q.client.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:               aws.String(q.cfg.QueueURL),
		MessageBody:            aws.String(string(body)),
		MessageGroupId:         aws.String(group),
		MessageDeduplicationId: aws.String(dedupID),
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (q *SQSQueue) Poll(ctx context.Context) (map[string][]Delivery, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.cfg.QueueURL),
		MaxNumberOfMessages: aws.Int64(q.cfg.MaxMessages),
		WaitTimeSeconds:     aws.Int64(int64(q.cfg.WaitTime.Seconds())),
		AttributeNames:      []*string{aws.String(sqs.MessageSystemAttributeNameMessageGroupId)},
	}
	if q.cfg.VisibilityTimeout > 0 {
		input.VisibilityTimeout = aws.Int64(int64(q.cfg.VisibilityTimeout.Seconds()))
	}

	out, err := q.client.ReceiveMessageWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	groups := make(map[string][]Delivery)
	for _, m := range out.Messages {
		group := aws.StringValue(m.Attributes[sqs.MessageSystemAttributeNameMessageGroupId])
		if group == "" {
			logger.WarnCtx(ctx, "SQS message without group", zap.String("messageID", aws.StringValue(m.MessageId)))
		}

		groups[group] = append(groups[group], newDelivery(
			aws.StringValue(m.MessageId),
			aws.StringValue(m.ReceiptHandle),
			[]byte(aws.StringValue(m.Body)),
		))
	}

	return groups, nil
}

func (q *SQSQueue) Delete(ctx context.Context, receipt string) error {
	_, err := q.client.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.cfg.QueueURL),
		ReceiptHandle: aws.String(receipt),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
