package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{50, "$0.50"},
		{100, "$1.00"},
		{666, "$6.66"},
		{12345, "$123.45"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-12345, "-$123.45"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(tc.cents), "cents %d", tc.cents)
	}
}
