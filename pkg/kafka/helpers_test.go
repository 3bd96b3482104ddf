package kafka

import (
	"io"

	"estatehub/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "info", Format: logger.JSON, Output: io.Discard, Service: "test"})
}
