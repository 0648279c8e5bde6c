package impl

import (
	"os"
	"testing"

	"pritapia/internal/observability/metrics"
)

func TestMain(m *testing.M) {
	// Curries the service label the way cmd does at startup; the login flow
	// increments counters and needs the vectors in their registered shape.
	metrics.MustRegister("test")
	os.Exit(m.Run())
}
