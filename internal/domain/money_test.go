package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsToPaise(t *testing.T) {
	assert.Equal(t, int64(0), CentsToPaise(0))
	assert.Equal(t, int64(83), CentsToPaise(1))
	assert.Equal(t, int64(539251), CentsToPaise(6497))
}

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{99, "0.99"},
		{100, "1.00"},
		{6497, "64.97"},
		{539251, "5392.51"},
		{-1999, "-19.99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinorUnits(tt.amount))
	}
}
