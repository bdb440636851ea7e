package telemetry

import (
	"context"
	"testing"

	"ritual_desk/internal/infrastructure/config"
	"ritual_desk/internal/infrastructure/logger"
)

func TestInit_DisabledReturnsNoop(t *testing.T) {
	shutdown := Init(context.Background(), logger.NewNop(), config.TelemetryConfig{Enabled: false}, "test")
	if shutdown == nil {
		t.Fatalf("expected shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown returned %v", err)
	}
}
