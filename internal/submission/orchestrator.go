// Package submission turns a checkout form into exactly one appended order
// row, or into a structured failure with nothing appended.
package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-orders/internal/apperr"
	"storefront-orders/internal/db"
	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/logger"
	"storefront-orders/internal/metrics"
	"storefront-orders/internal/orderid"
	"storefront-orders/internal/retry"
	"storefront-orders/internal/validation"
	"storefront-orders/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var _ interfaces.Submitter = (*Orchestrator)(nil)

var (
	ErrNothingToRetry = errors.New("no previous submission to retry")
	errOffline        = errors.New("network is offline")
)

const (
	integrityReason = "order payload integrity check failed"
	successMessage  = "Your order has been placed successfully"
	invalidMessage  = "Please correct the highlighted fields"
)

// Orchestrator is not safe for reentrant use: callers must wait for one
// SubmitOrder to return before starting the next.
type Orchestrator struct {
	orderLog  interfaces.OrderLog
	backups   interfaces.BackupStore
	network   interfaces.NetworkStatus
	history   interfaces.OrderHistory
	nextKey   func() string
	retryOpts retry.Options
	source    string
	log       *logger.Logger
	tracer    trace.Tracer
	now       func() time.Time

	mu   sync.Mutex
	last *models.OrderInput
}

type Option func(*Orchestrator)

func WithBackupStore(s interfaces.BackupStore) Option {
	return func(o *Orchestrator) { o.backups = s }
}

func WithNetworkStatus(n interfaces.NetworkStatus) Option {
	return func(o *Orchestrator) { o.network = n }
}

func WithHistory(h interfaces.OrderHistory) Option {
	return func(o *Orchestrator) { o.history = h }
}

func WithBackupKeys(next func() string) Option {
	return func(o *Orchestrator) { o.nextKey = next }
}

func WithRetryOptions(opts retry.Options) Option {
	return func(o *Orchestrator) { o.retryOpts = opts }
}

// WithSource sets the metrics label of the entry point (api, kafka).
func WithSource(source string) Option {
	return func(o *Orchestrator) { o.source = source }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l.WithComponent("submission") }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func NewOrchestrator(orderLog interfaces.OrderLog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		orderLog:  orderLog,
		nextKey:   db.NewKeyGenerator().Next,
		retryOpts: retry.DefaultOptions(),
		source:    "api",
		log:       logger.Discard(),
		tracer:    noop.NewTracerProvider().Tracer("submission"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SubmitOrder validates, appends and reports one order. The matching callback
// is invoked exactly once with the returned result.
func (o *Orchestrator) SubmitOrder(ctx context.Context, input *models.OrderInput, cb models.Callbacks) models.SubmitResult {
	ctx, span := o.tracer.Start(ctx, "order.submit")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.OrderSubmissionTime.WithLabelValues(o.source, "submit").Observe(time.Since(start).Seconds())
	}()

	if input != nil {
		o.remember(input)
	}

	result, status := o.submit(ctx, input)
	metrics.OrdersSubmitted.WithLabelValues(o.source, status).Inc()

	span.SetAttributes(attribute.String("order.status", status))
	if result.Success {
		span.SetAttributes(attribute.String("order.id", result.OrderID))
		span.SetStatus(codes.Ok, "order appended")
		if cb.OnSuccess != nil {
			cb.OnSuccess(result)
		}
	} else {
		span.SetStatus(codes.Error, status)
		if cb.OnError != nil {
			cb.OnError(result)
		}
	}
	return result
}

// RetrySubmission re-submits the last input passed to SubmitOrder.
func (o *Orchestrator) RetrySubmission(ctx context.Context, cb models.Callbacks) (models.SubmitResult, error) {
	o.mu.Lock()
	last := o.last
	o.mu.Unlock()

	if last == nil {
		return models.SubmitResult{}, ErrNothingToRetry
	}
	input := cloneInput(last)
	return o.SubmitOrder(ctx, &input, cb), nil
}

func (o *Orchestrator) submit(ctx context.Context, input *models.OrderInput) (models.SubmitResult, string) {
	form := validation.ValidateOrder(input)
	if !form.IsValid {
		return models.SubmitResult{Success: false, Message: invalidMessage, Errors: form.Errors}, "validation_error"
	}

	clean := sanitizeInput(input)
	items, err := validation.ValidateProducts(clean.Items)
	if err != nil {
		return o.integrityFault(ctx, input, items, err), "integrity_error"
	}

	if !o.online() {
		o.log.Warn("order not sent, network is offline")
		return o.failure(errOffline, false), "offline"
	}

	ts := o.now()
	total := totalAmount(items)
	row := buildRow(ts, clean, items, total)

	opts := o.retryOpts
	opts.Classify = func(err error) models.Category {
		return apperr.Category(err, o.online())
	}
	opts.OnRetry = func(attempt int, err error, delay time.Duration) {
		o.log.Warn("order append failed, retrying",
			"attempt", attempt+1, "max_retries", opts.MaxRetries, "delay", delay.String(), "error", err)
	}

	_, err = retry.Do(ctx, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, o.orderLog.AppendRow(ctx, row)
	}, opts)
	if err != nil {
		o.log.Error("order append failed", "error", err)
		return o.failure(err, o.online()), "remote_error"
	}

	// номер заказа только после подтверждённой записи
	id := orderid.Generate(o.now())
	record := &models.OrderRecord{
		OrderID:       id,
		Timestamp:     ts,
		Customer:      clean.Customer,
		Shipping:      clean.Shipping,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: clean.PaymentMethod,
		Notes:         clean.Notes,
	}
	if o.history != nil {
		o.history.Set(id, record)
	}
	o.log.Info("order appended", "order_id", id, "total", total, "items", len(items))

	return models.SubmitResult{Success: true, OrderID: id, Message: successMessage, Record: record}, "success"
}

func (o *Orchestrator) failure(err error, online bool) models.SubmitResult {
	classified := apperr.Classify(err, online)
	metrics.ErrorsClassified.WithLabelValues(string(classified.Category)).Inc()

	presentation := apperr.PresentClassified(classified, err.Error())
	return models.SubmitResult{
		Success:      false,
		Message:      presentation.Message,
		ErrorDetails: &presentation,
	}
}

func (o *Orchestrator) integrityFault(ctx context.Context, input *models.OrderInput, items []models.CleanedItem, err error) models.SubmitResult {
	var problems []string
	var ie *validation.IntegrityError
	if errors.As(err, &ie) {
		problems = ie.Problems
	} else {
		problems = []string{err.Error()}
	}

	key := o.nextKey()
	o.log.Error("order blocked by malformed product payload",
		"backup_key", key, "problems", problems)

	if o.backups != nil {
		raw := cloneInput(input)
		backup := &models.FailureBackup{
			Timestamp:      o.now(),
			Reason:         integrityReason,
			Errors:         problems,
			RawItems:       raw.Items,
			CleanedDetails: items,
			FormData:       &raw,
		}
		// запись резервной копии не должна мешать ответу пользователю
		if werr := o.backups.SaveFailedOrder(context.WithoutCancel(ctx), key, backup); werr != nil {
			o.log.Error("failed to write failure backup", "backup_key", key, "error", werr)
		}
	}

	presentation := apperr.PresentIntegrityFault()
	metrics.ErrorsClassified.WithLabelValues(string(presentation.Category)).Inc()
	return models.SubmitResult{
		Success:      false,
		Message:      presentation.Message,
		Errors:       map[string]string{"items": err.Error()},
		ErrorDetails: &presentation,
	}
}

func (o *Orchestrator) online() bool {
	return o.network == nil || o.network.Online()
}

func (o *Orchestrator) remember(input *models.OrderInput) {
	c := cloneInput(input)
	o.mu.Lock()
	o.last = &c
	o.mu.Unlock()
}

func cloneInput(in *models.OrderInput) models.OrderInput {
	out := *in
	out.Items = make([]models.LineItem, len(in.Items))
	for i, item := range in.Items {
		if item.Price != nil {
			p := *item.Price
			item.Price = &p
		}
		if item.Customization != nil {
			custom := make(models.CustomizationMap, len(item.Customization))
			for k, v := range item.Customization {
				custom[k] = v
			}
			item.Customization = custom
		}
		out.Items[i] = item
	}
	return out
}
