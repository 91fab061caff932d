package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/frahmantamala/parc-info/internal/auth/session"
	"github.com/frahmantamala/parc-info/pkg/logger"
	"go.uber.org/goleak"
)

func TestPrunerStopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pruner := session.NewPruner(newMemoryStore(), 5*time.Millisecond, logger.Discard())
	pruner.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	pruner.Stop()
}
