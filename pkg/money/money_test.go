package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole value", 250.0, "250.00"},
		{"single decimal", 250.5, "250.50"},
		{"two decimals", 99.99, "99.99"},
		{"minimum charge", 0.01, "0.01"},
		{"thousands", 1234.56, "1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount))
		})
	}
}
