package testutil

import (
	"io"

	"github.com/inkwellhq/inkwell-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
