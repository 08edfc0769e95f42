package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 189.99, 189.99, true},
		{"int", 150, 150, true},
		{"int64", int64(220), 220, true},
		{"plain string", "150", 150, true},
		{"dollar sign", "$189.99", 189.99, true},
		{"thousands separator", "$1,234.56", 1234.56, true},
		{"euro", "€89", 89, true},
		{"pound", "£70.50", 70.5, true},
		{"surrounding whitespace", "  $120  ", 120, true},
		{"nil", nil, 0, false},
		{"empty string", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"symbols only", "$,", 0, false},
		{"garbage", "call for price", 0, false},
		{"bool", true, 0, false},
		{"object", map[string]any{"amount": 10}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriceNeverErrors(t *testing.T) {
	// Absent or malformed price values degrade to "no value", they must not
	// abort anything upstream.
	for _, v := range []any{nil, "", "N/A", []any{1, 2}, struct{}{}} {
		_, ok := ParsePrice(v)
		require.False(t, ok)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"bare date", "2024-03-01", "2024-03-01"},
		{"iso timestamp", "2024-03-01T00:00:00Z", "2024-03-01"},
		{"space separated", "2024-03-01 10:30:00", "2024-03-01"},
		{"date prefix", "2024-03-01extra", "2024-03-01"},
		{"space separated words truncate", "March 2024", "March"},
		{"unrecognized passes through", "Spring24", "Spring24"},
		{"empty", "", ""},
		{"non-string", 20240301, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.in))
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"men", "Men's"},
		{"women", "Women's"},
		{"Female", "Women's"},
		{"youth", "Children's"},
		{"kids", "Children's"},
		{"child", "Children's"},
		{"unisex", "Men's"},
		{"", "Men's"},
		{nil, "Men's"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.in))
	}
}
