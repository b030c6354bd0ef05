package interfaces

import (
	"context"

	"storefront-orders/models"
)

//go:generate mockgen -destination=../mocks/mocks.go -package=mocks storefront-orders/internal/interfaces OrderLog,BackupStore,NetworkStatus,OrderHistory,Submitter

// OrderLog интерфейс удалённого журнала заказов (только добавление строк)
type OrderLog interface {
	AppendRow(ctx context.Context, row []any) error
}

// BackupStore интерфейс локального хранилища резервных копий неудачных заказов
type BackupStore interface {
	SaveFailedOrder(ctx context.Context, key string, backup *models.FailureBackup) error
}

// NetworkStatus сообщает, доступна ли сеть
type NetworkStatus interface {
	Online() bool
}

// OrderHistory интерфейс кэша истории заказов
type OrderHistory interface {
	Set(orderID string, record *models.OrderRecord)
	Get(orderID string) (*models.OrderRecord, bool)
}

// Submitter интерфейс оформления заказа
type Submitter interface {
	SubmitOrder(ctx context.Context, input *models.OrderInput, cb models.Callbacks) models.SubmitResult
	RetrySubmission(ctx context.Context, cb models.Callbacks) (models.SubmitResult, error)
}
