package validation

import (
	"testing"

	"tool-compare-data/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	// No db: history stays disabled and Load skips the migration
	feature := NewFeature(mockClient, "reports", logger, nil, Config{})

	assert.Equal(t, "validation", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.False(t, feature.service.HistoryEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
