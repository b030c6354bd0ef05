package models

import "time"

// OrderInput - сырые данные формы оформления заказа
type OrderInput struct {
	Customer      Customer        `json:"customer"`
	Shipping      ShippingAddress `json:"shipping"`
	Items         []LineItem      `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	Notes         string          `json:"notes" validate:"notes"`
}

type Customer struct {
	Name  string `json:"name" validate:"person_name"`
	Email string `json:"email" validate:"email_address"`
	Phone string `json:"phone" validate:"phone"`
}

type ShippingAddress struct {
	Street  string `json:"street" validate:"street"`
	City    string `json:"city" validate:"city"`
	State   string `json:"state" validate:"state"`
	Zip     string `json:"zip" validate:"zip"`
	Country string `json:"country"`
}

// LineItem is one product line of the cart. Price is a pointer so that a
// missing price can be told apart from a free item. Quantity keeps the decoded
// JSON value (number, numeric string, or nil when absent) so that bad input is
// reported on the field instead of failing the whole decode.
type LineItem struct {
	ProductName   string           `json:"product_name"`
	Quantity      any              `json:"quantity"`
	Price         *float64         `json:"price" validate:"omitempty,gte=0"`
	Customization CustomizationMap `json:"customization,omitempty"`
}

// CustomizationMap maps an option name (color, text, size...) to its value.
// The UploadsKey entry holds upload metadata and is never iterated generically.
type CustomizationMap map[string]any

const (
	UploadsKey          = "_uploads"
	UploadPreviewKey    = "upload_preview"
	ReservedPrefix      = "__"
	FailureBackupPrefix = "failed_order_"
)

// CleanedItem - позиция заказа после очистки кастомизаций
type CleanedItem struct {
	ProductName   string            `json:"product_name"`
	Quantity      int               `json:"quantity"`
	Price         float64           `json:"price"`
	Customization map[string]string `json:"customization"`
	UploadPreview string            `json:"upload_preview,omitempty"`
}

// OrderRecord mirrors one appended row of the remote order log.
type OrderRecord struct {
	OrderID       string          `json:"order_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Customer      Customer        `json:"customer"`
	Shipping      ShippingAddress `json:"shipping"`
	Items         []CleanedItem   `json:"items"`
	TotalAmount   float64         `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
}

// RowColumns is the fixed column order of the remote order log.
var RowColumns = []string{
	"timestamp",
	"customer_name",
	"email",
	"phone",
	"street",
	"city",
	"state",
	"zip",
	"country",
	"products",
	"customizations",
	"upload_previews",
	"total_amount",
	"payment_method",
	"notes",
}

// FailureBackup is the JSON snapshot written when a data-integrity fault blocks a submission.
type FailureBackup struct {
	Timestamp      time.Time     `json:"timestamp"`
	Reason         string        `json:"reason"`
	Errors         []string      `json:"errors"`
	RawItems       []LineItem    `json:"rawItems"`
	CleanedDetails []CleanedItem `json:"cleanedDetails"`
	FormData       *OrderInput   `json:"formData"`
}

// ValidationResult - результат проверки одного поля
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// FormResult - результат проверки всей формы
type FormResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

type SubmitResult struct {
	Success      bool               `json:"success"`
	OrderID      string             `json:"orderId,omitempty"`
	Message      string             `json:"message,omitempty"`
	Errors       map[string]string  `json:"errors,omitempty"`
	ErrorDetails *ErrorPresentation `json:"errorDetails,omitempty"`
	Record       *OrderRecord       `json:"record,omitempty"`
}

// Callbacks are invoked once per SubmitOrder call with the final result.
type Callbacks struct {
	OnSuccess func(SubmitResult)
	OnError   func(SubmitResult)
}
