// internal/kafka/consumer_integration_test.go
//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"storefront-orders/internal/logger"
	"storefront-orders/internal/mocks"
	"storefront-orders/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func brokersFromEnv(t *testing.T) []string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	broker := os.Getenv("KAFKA_BROKERS")
	if broker == "" {
		t.Skip("KAFKA_BROKERS environment variable is not set")
	}
	return strings.Split(broker, ",")
}

func TestKafkaConsumer_Integration(t *testing.T) {
	brokers := brokersFromEnv(t)
	suffix := gofakeit.LetterN(8)
	intakeTopic := "checkout_submissions_" + suffix
	dlqTopic := "orders_dlq_" + suffix

	producer := NewWriter(brokers, intakeTopic)
	producer.AllowAutoTopicCreation = true
	defer producer.Close()
	dlq := NewWriter(brokers, dlqTopic)
	dlq.AllowAutoTopicCreation = true
	defer dlq.Close()

	input := createTestInput()
	payload, _ := json.Marshal(input)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	require.NoError(t, producer.WriteMessages(ctx,
		kafka.Message{Key: []byte("valid"), Value: payload},
		kafka.Message{Key: []byte("broken"), Value: []byte(`{"invalid": json}`)},
	))

	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockSubmitter(ctrl)
	placed := make(chan string, 1)
	submitter.EXPECT().SubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got *models.OrderInput, _ models.Callbacks) models.SubmitResult {
			placed <- got.Customer.Email
			return models.SubmitResult{Success: true, OrderID: "ORD-20261019-INTEG"}
		})

	consumer := NewConsumer(brokers, intakeTopic, "group_"+suffix, dlq, submitter, logger.Discard(), otel.Tracer("test"))
	defer consumer.Close()

	runCtx, stop := context.WithCancel(ctx)
	go consumer.Run(runCtx)

	select {
	case email := <-placed:
		assert.Equal(t, input.Customer.Email, email)
	case <-ctx.Done():
		t.Fatal("valid submission was not consumed")
	}

	dlqReader := kafka.NewReader(kafka.ReaderConfig{Brokers: brokers, Topic: dlqTopic, GroupID: "dlq_" + suffix})
	defer dlqReader.Close()

	msg, err := dlqReader.ReadMessage(ctx)
	require.NoError(t, err)
	stop()

	assert.Equal(t, "broken", string(msg.Key))
	assert.Equal(t, ReasonInvalidJSON, header(msg, HeaderErrorReason))
}
