// Package apperr maps raw failures onto the closed error taxonomy and the
// user-facing copy shown for each category.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-orders/models"
)

// StatusError is a remote failure that carries an HTTP status code.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote call failed with status %d", e.Status)
	}
	return fmt.Sprintf("remote call failed with status %d: %s", e.Status, e.Message)
}

func (e *StatusError) StatusCode() int {
	return e.Status
}

func WithStatus(status int, message string) error {
	return &StatusError{Status: status, Message: message}
}

type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the HTTP status carried anywhere in err's chain, or 0.
func StatusOf(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// Category classifies err. The order of the checks matters: several of them
// can hold at once and the first match wins.
func Category(err error, online bool) models.Category {
	if err == nil {
		return models.CategorySystem
	}
	msg := strings.ToLower(err.Error())
	status := StatusOf(err)

	switch {
	case !online || containsAny(msg, "network", "offline"):
		return models.CategoryNetwork
	case status == http.StatusUnauthorized || containsAny(msg, "not authenticated", "sign in", "authorization"):
		return models.CategoryAuth
	case status == http.StatusBadRequest || containsAny(msg, "validation", "invalid", "required"):
		return models.CategoryValidation
	case status == http.StatusForbidden:
		return models.CategoryAPI
	case status == http.StatusNotFound:
		return models.CategorySheetConfig
	case status == http.StatusTooManyRequests:
		return models.CategoryAPI
	case strings.Contains(msg, "sheet") && containsAny(msg, "not configured", "not found"):
		return models.CategorySheetConfig
	default:
		return models.CategorySystem
	}
}

// Classify returns the category, severity and status of err.
func Classify(err error, online bool) models.ClassifiedError {
	category := Category(err, online)
	status := StatusOf(err)
	return models.ClassifiedError{
		Category: category,
		Severity: severityOf(category, status),
		Status:   status,
	}
}

func severityOf(category models.Category, status int) models.Severity {
	switch category {
	case models.CategoryValidation:
		return models.SeverityMedium
	case models.CategoryAPI:
		if status == http.StatusTooManyRequests {
			return models.SeverityMedium
		}
		return models.SeverityHigh
	case models.CategorySheetConfig:
		return models.SeverityCritical
	default:
		return models.SeverityHigh
	}
}

// IsRetryable reports whether the retry engine may attempt the operation again.
func IsRetryable(category models.Category) bool {
	switch category {
	case models.CategoryValidation, models.CategoryAuth, models.CategorySheetConfig:
		return false
	default:
		return true
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
