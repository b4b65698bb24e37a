// ABOUTME: Shared helpers for gateway handler tests
// ABOUTME: Provides a discard logger so test output stays readable

package gateway

import (
	"io"
	"log/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
