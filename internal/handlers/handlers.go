package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/logger"
	"storefront-orders/internal/orderid"
	"storefront-orders/internal/submission"
	"storefront-orders/internal/validation"
	"storefront-orders/models"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	History interfaces.OrderHistory
	Network interfaces.NetworkStatus
	Tracer  trace.Tracer
	log     *logger.Logger

	// у каждой сессии свой оркестратор и своя блокировка отправки
	sessions *sessionStore
}

// NewHandler serves the checkout API. newSubmitter is called once per checkout
// session; sessions idle for longer than sessionTTL are dropped.
func NewHandler(newSubmitter func() interfaces.Submitter, sessionTTL time.Duration, history interfaces.OrderHistory, network interfaces.NetworkStatus, tracer trace.Tracer, log *logger.Logger) *Handler {
	return &Handler{
		History:  history,
		Network:  network,
		Tracer:   tracer,
		log:      log.WithComponent("handlers"),
		sessions: newSessionStore(newSubmitter, sessionTTL),
	}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validateFieldRequest struct {
	Value    any    `json:"value"`
	Country  string `json:"country,omitempty"`
	Required bool   `json:"required,omitempty"`
	Label    string `json:"label,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	Online bool   `json:"online"`
}

func (h *Handler) SubmitOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.Tracer.Start(r.Context(), "http.submit_order")
	defer span.End()

	sess := h.sessions.get(sessionID(w, r))

	var input models.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid JSON")
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid JSON body"})
		return
	}

	if !sess.pending.TryLock() {
		span.SetStatus(codes.Error, "submission pending")
		h.writeJSON(w, http.StatusConflict, messageResponse{Message: "An order submission is already in progress"})
		return
	}
	defer sess.pending.Unlock()

	result := sess.submitter.SubmitOrder(ctx, &input, models.Callbacks{})
	h.writeResult(w, span, result)
}

func (h *Handler) RetrySubmissionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.Tracer.Start(r.Context(), "http.retry_submission")
	defer span.End()

	sess := h.sessions.get(sessionID(w, r))
	if !sess.pending.TryLock() {
		span.SetStatus(codes.Error, "submission pending")
		h.writeJSON(w, http.StatusConflict, messageResponse{Message: "An order submission is already in progress"})
		return
	}
	defer sess.pending.Unlock()

	result, err := sess.submitter.RetrySubmission(ctx, models.Callbacks{})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, submission.ErrNothingToRetry) {
			span.SetStatus(codes.Error, "nothing to retry")
			h.writeJSON(w, http.StatusNotFound, messageResponse{Message: "There is no previous order to retry"})
			return
		}
		span.SetStatus(codes.Error, err.Error())
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Retry failed"})
		return
	}
	h.writeResult(w, span, result)
}

func (h *Handler) ValidateFieldHandler(w http.ResponseWriter, r *http.Request) {
	field := mux.Vars(r)["field"]

	var req validateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid JSON body"})
		return
	}

	result := validation.ValidateField(field, req.Value, validation.FieldOptions{
		Required: req.Required,
		Label:    req.Label,
		Country:  req.Country,
	})
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) OrderHandler(w http.ResponseWriter, r *http.Request) {
	_, span := h.Tracer.Start(r.Context(), "http.get_order")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("order.id", id))

	if !orderid.Valid(id) {
		span.SetStatus(codes.Error, "bad order id")
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Malformed order ID"})
		return
	}

	record, ok := h.History.Get(id)
	if !ok {
		span.SetStatus(codes.Error, "order not found")
		h.writeJSON(w, http.StatusNotFound, messageResponse{Message: "Order not found"})
		return
	}

	h.writeJSON(w, http.StatusOK, record)
	span.SetStatus(codes.Ok, "order found")
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	online := h.Network == nil || h.Network.Online()
	status := "ok"
	if !online {
		status = "degraded"
	}
	h.writeJSON(w, http.StatusOK, healthResponse{Status: status, Online: online})
}

func (h *Handler) writeResult(w http.ResponseWriter, span trace.Span, result models.SubmitResult) {
	status := StatusFor(result)
	span.SetAttributes(attribute.Int("http.status_code", status))
	if result.Success {
		span.SetAttributes(attribute.String("order.id", result.OrderID))
		span.SetStatus(codes.Ok, "order placed")
	} else {
		span.SetStatus(codes.Error, result.Message)
	}
	h.writeJSON(w, status, result)
}

// StatusFor maps a submission result onto the HTTP status of the response.
func StatusFor(result models.SubmitResult) int {
	if result.Success {
		return http.StatusCreated
	}
	d := result.ErrorDetails
	if d == nil {
		return http.StatusBadRequest
	}

	switch d.Category {
	case models.CategoryNetwork:
		return http.StatusServiceUnavailable
	case models.CategoryAuth:
		return http.StatusUnauthorized
	case models.CategoryValidation:
		return http.StatusBadRequest
	case models.CategoryAPI:
		if d.Status == http.StatusTooManyRequests || d.Status == http.StatusForbidden {
			return d.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}
