package orderid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Format(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 30, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		id := Generate(now)
		assert.True(t, Valid(id), id)
		assert.True(t, strings.HasPrefix(id, "ORD-20261019-"), id)
	}
}

func TestGenerate_UsesUTCDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 19 октября 01:00 по IST это ещё 18 октября по UTC
	now := time.Date(2026, time.October, 19, 1, 0, 0, 0, ist)

	assert.True(t, strings.HasPrefix(Generate(now), "ORD-20261018-"))
}

func TestGenerate_SuffixesVary(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[Generate(now)] = struct{}{}
	}
	assert.Greater(t, len(seen), 90)
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"ORD-20261019-AB12C", true},
		{"ORD-20261019-ab12c", false},
		{"ORD-2026101-AB12C", false},
		{"ORD-20261019-AB12", false},
		{"ord-20261019-AB12C", false},
		{"12345", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.id), tt.id)
	}
}
