package server_test

import (
	"testing"

	"tool-compare-data/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
}

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Configured", 10, 10 * 1024 * 1024},
		{"Zero", 0, 4 * 1024 * 1024},
		{"Negative", -1, 4 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.limit}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, server.Config{}.Validate(), server.ErrNoApiKey)
	assert.NoError(t, server.Config{ApiKey: "secret"}.Validate())
	assert.NoError(t, server.Config{AllowAnonymous: true}.Validate())
}
