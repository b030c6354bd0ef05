package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"storefront-orders/models"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		online bool
		want   models.Category
	}{
		{"nil error", nil, true, models.CategorySystem},
		{"offline beats everything", WithStatus(http.StatusForbidden, "denied"), false, models.CategoryNetwork},
		{"network in message", errors.New("Network request failed"), true, models.CategoryNetwork},
		{"offline in message", errors.New("client is offline"), true, models.CategoryNetwork},
		{"401", WithStatus(http.StatusUnauthorized, ""), true, models.CategoryAuth},
		{"not authenticated", errors.New("Not authenticated"), true, models.CategoryAuth},
		{"sign in", errors.New("please sign in"), true, models.CategoryAuth},
		{"authorization header", errors.New("missing Authorization header"), true, models.CategoryAuth},
		{"400", WithStatus(http.StatusBadRequest, ""), true, models.CategoryValidation},
		{"required", errors.New("field is required"), true, models.CategoryValidation},
		{"invalid", errors.New("Invalid value"), true, models.CategoryValidation},
		{"403", WithStatus(http.StatusForbidden, ""), true, models.CategoryAPI},
		{"404", WithStatus(http.StatusNotFound, ""), true, models.CategorySheetConfig},
		{"429", WithStatus(http.StatusTooManyRequests, ""), true, models.CategoryAPI},
		{"sheet not found", errors.New("Sheet not found"), true, models.CategorySheetConfig},
		{"sheet not configured", errors.New("order sheet is not configured"), true, models.CategorySheetConfig},
		{"sheet alone", errors.New("sheet exploded"), true, models.CategorySystem},
		{"500", WithStatus(http.StatusInternalServerError, ""), true, models.CategorySystem},
		{"unknown", errors.New("boom"), true, models.CategorySystem},
		{"wrapped status", fmt.Errorf("append: %w", WithStatus(http.StatusForbidden, "")), true, models.CategoryAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.err, tt.online))
		})
	}
}

func TestCategory_RuleOrder(t *testing.T) {
	// сообщение про сеть важнее кода 401
	err := WithStatus(http.StatusUnauthorized, "network glitch")
	assert.Equal(t, models.CategoryNetwork, Category(err, true))

	// 401 важнее слова "invalid"
	err = WithStatus(http.StatusUnauthorized, "invalid credentials")
	assert.Equal(t, models.CategoryAuth, Category(err, true))

	// слово "required" важнее кода 403
	err = WithStatus(http.StatusForbidden, "scope required")
	assert.Equal(t, models.CategoryValidation, Category(err, true))
}

func TestClassify_Severity(t *testing.T) {
	tests := []struct {
		err  error
		want models.Severity
	}{
		{WithStatus(http.StatusBadRequest, ""), models.SeverityMedium},
		{WithStatus(http.StatusTooManyRequests, ""), models.SeverityMedium},
		{WithStatus(http.StatusForbidden, ""), models.SeverityHigh},
		{WithStatus(http.StatusNotFound, ""), models.SeverityCritical},
		{errors.New("network down"), models.SeverityHigh},
		{errors.New("boom"), models.SeverityHigh},
	}
	for _, tt := range tests {
		c := Classify(tt.err, true)
		assert.Equal(t, tt.want, c.Severity, tt.err.Error())
	}
}

func TestClassify_CarriesStatus(t *testing.T) {
	c := Classify(fmt.Errorf("wrapped: %w", WithStatus(http.StatusTooManyRequests, "slow down")), true)
	assert.Equal(t, http.StatusTooManyRequests, c.Status)
	assert.Equal(t, 0, StatusOf(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(models.CategoryNetwork))
	assert.True(t, IsRetryable(models.CategoryAPI))
	assert.True(t, IsRetryable(models.CategorySystem))
	assert.False(t, IsRetryable(models.CategoryValidation))
	assert.False(t, IsRetryable(models.CategoryAuth))
	assert.False(t, IsRetryable(models.CategorySheetConfig))
}
