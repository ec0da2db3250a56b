package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "abc", "abc"},
		{"Bytes", []byte("xyz"), "xyz"},
		{"Int64", int64(-42), "-42"},
		{"Int", 7, "7"},
		{"Float", 1000000.5, "1000000.5"},
		{"FloatWhole", float64(3), "3"},
		{"Float32", float32(0.25), "0.25"},
		{"Bool", true, "true"},
		{"Time", time.Date(2024, 3, 1, 8, 5, 0, 0, time.UTC), "2024-03-01 08:05:00"},
		{"TimeFraction", time.Date(2024, 3, 1, 8, 5, 0, 500_000_000, time.UTC), "2024-03-01 08:05:00.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}
