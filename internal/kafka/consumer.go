package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/logger"
	"storefront-orders/models"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	HeaderErrorReason   = "error_reason"
	HeaderErrorCategory = "error_category"

	ReasonInvalidJSON      = "invalid_json"
	ReasonValidationFailed = "validation_failed"
	ReasonSubmitFailed     = "submission_failed"
	ReasonIntegrityFault   = "integrity_fault"

	defaultFetchBackoff = time.Second
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer the consumer and the DLQ store need.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads checkout submissions from the intake topic and places them
// one at a time. Anything that cannot be placed ends up in the DLQ.
type Consumer struct {
	reader    MessageReader
	dlq       MessageWriter
	submitter interfaces.Submitter
	log       *logger.Logger
	tracer    trace.Tracer

	// integrity faults already reach the DLQ through DLQBackupStore
	backupsMirrored bool
	fetchBackoff    time.Duration
}

type ConsumerOption func(*Consumer)

// WithMirroredBackups tells the consumer that the submitter's failure backups
// are written to the same DLQ, so integrity faults are committed without
// forwarding the raw message a second time.
func WithMirroredBackups() ConsumerOption {
	return func(c *Consumer) { c.backupsMirrored = true }
}

// WithFetchBackoff sets the pause after a failed fetch.
func WithFetchBackoff(d time.Duration) ConsumerOption {
	return func(c *Consumer) { c.fetchBackoff = d }
}

func NewConsumer(brokers []string, topic, groupID string, dlq MessageWriter, submitter interfaces.Submitter, log *logger.Logger, tracer trace.Tracer, opts ...ConsumerOption) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
	})
	return newConsumer(r, dlq, submitter, log, tracer, opts...)
}

func newConsumer(reader MessageReader, dlq MessageWriter, submitter interfaces.Submitter, log *logger.Logger, tracer trace.Tracer, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		reader:       reader,
		dlq:          dlq,
		submitter:    submitter,
		log:          log.WithComponent("kafka_consumer"),
		tracer:       tracer,
		fetchBackoff: defaultFetchBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWriter returns a writer for topic. It serves both the DLQ and the producer.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				c.log.Info("consumer stopped")
				return
			}
			c.log.Error("kafka fetch failed", "error", err, "backoff", c.fetchBackoff.String())
			select {
			case <-time.After(c.fetchBackoff):
			case <-ctx.Done():
				c.log.Info("consumer stopped")
				return
			}
			continue
		}

		if failure := c.processMessage(ctx, m); failure != nil {
			c.log.Warn("checkout submission rejected",
				"offset", m.Offset, "partition", m.Partition, "reason", failure.reason, "error", failure.err)
			if failure.reason == ReasonIntegrityFault && c.backupsMirrored {
				c.commit(ctx, m)
				continue
			}
			if err := c.sendToDLQ(ctx, m, failure); err != nil {
				// без коммита сообщение будет перечитано после рестарта
				c.log.Error("failed to forward message to DLQ", "offset", m.Offset, "error", err)
				continue
			}
		}
		c.commit(ctx, m)
	}
}

type processFailure struct {
	reason   string
	category models.Category
	err      error
}

func (c *Consumer) processMessage(ctx context.Context, m kafka.Message) *processFailure {
	ctx, span := c.tracer.Start(ctx, "kafka.process_message")
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.kafka.topic", m.Topic),
		attribute.Int64("messaging.kafka.offset", m.Offset),
	)

	var input models.OrderInput
	if err := json.Unmarshal(m.Value, &input); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ReasonInvalidJSON)
		return &processFailure{reason: ReasonInvalidJSON, err: fmt.Errorf("decode checkout submission: %w", err)}
	}

	result := c.submitter.SubmitOrder(ctx, &input, models.Callbacks{})
	if result.Success {
		span.SetAttributes(attribute.String("order.id", result.OrderID))
		span.SetStatus(codes.Ok, "order placed")
		c.log.Info("order placed from intake", "order_id", result.OrderID)
		return nil
	}

	failure := &processFailure{reason: ReasonSubmitFailed, err: errors.New(result.Message)}
	switch {
	case result.ErrorDetails == nil:
		failure.reason = ReasonValidationFailed
		failure.err = fmt.Errorf("%s: %s", result.Message, joinFieldErrors(result.Errors))
	case result.Errors["items"] != "":
		failure.reason = ReasonIntegrityFault
		failure.category = result.ErrorDetails.Category
	default:
		failure.category = result.ErrorDetails.Category
	}
	span.SetStatus(codes.Error, failure.reason)
	return failure
}

func (c *Consumer) commit(ctx context.Context, m kafka.Message) {
	if err := c.reader.CommitMessages(ctx, m); err != nil {
		c.log.Error("kafka commit failed", "offset", m.Offset, "error", err)
	}
}

func (c *Consumer) sendToDLQ(ctx context.Context, m kafka.Message, failure *processFailure) error {
	headers := []kafka.Header{{Key: HeaderErrorReason, Value: []byte(failure.reason)}}
	if failure.category != "" {
		headers = append(headers, kafka.Header{Key: HeaderErrorCategory, Value: []byte(failure.category)})
	}
	return c.dlq.WriteMessages(ctx, kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
	})
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.log.Error("failed to close kafka reader", "error", err)
	}
}

func joinFieldErrors(errs map[string]string) string {
	parts := make([]string, 0, len(errs))
	for field, msg := range errs {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}
