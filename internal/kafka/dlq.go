package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/metrics"
	"storefront-orders/models"

	"github.com/segmentio/kafka-go"
)

var _ interfaces.BackupStore = (*DLQBackupStore)(nil)

// DLQBackupStore mirrors failure backups onto the DLQ topic, keyed by the backup key.
type DLQBackupStore struct {
	writer MessageWriter
}

func NewDLQBackupStore(writer MessageWriter) *DLQBackupStore {
	return &DLQBackupStore{writer: writer}
}

func (s *DLQBackupStore) SaveFailedOrder(ctx context.Context, key string, backup *models.FailureBackup) error {
	if backup == nil {
		return errors.New("failure backup is nil")
	}
	payload, err := json.Marshal(backup)
	if err != nil {
		metrics.BackupWrites.WithLabelValues("kafka", "error").Inc()
		return fmt.Errorf("marshal failure backup: %w", err)
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: HeaderErrorReason, Value: []byte(ReasonIntegrityFault)},
		},
	})
	if err != nil {
		metrics.BackupWrites.WithLabelValues("kafka", "error").Inc()
		return fmt.Errorf("write failure backup %s to DLQ: %w", key, err)
	}

	metrics.BackupWrites.WithLabelValues("kafka", "success").Inc()
	return nil
}

func (s *DLQBackupStore) Close() error {
	return s.writer.Close()
}
