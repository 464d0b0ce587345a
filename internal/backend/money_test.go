package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"19.99", 1999},
		{"5", 500},
		{"5.0", 500},
		{"5.5", 550},
		{"0.05", 5},
		{"0", 0},
		{"129.95", 12995},
		{"1.999", 200},
		{"-19.99", -1999},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecimalToCents(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecimalToCentsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.x9"} {
		_, err := DecimalToCents(in)
		assert.Error(t, err, "input %q", in)
	}
}
