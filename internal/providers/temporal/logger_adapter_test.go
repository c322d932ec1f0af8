package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := NewZapLoggerAdapter(zap.New(core))

	adapter.Info("started", "workflow_id", "backfill-1", "attempt", 2)
	adapter.Warn("odd", "key")
	adapter.Error("bad key", 42, "value", "ok", true)

	with, ok := adapter.(log.WithLogger)
	assert.True(t, ok)
	with.With("task_queue", "darkpool").Debug("polled")

	entries := logs.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, map[string]interface{}{"workflow_id": "backfill-1", "attempt": int64(2)}, entries[0].ContextMap())
	assert.Empty(t, entries[1].ContextMap())
	assert.Equal(t, map[string]interface{}{"ok": true}, entries[2].ContextMap())
	assert.Equal(t, map[string]interface{}{"task_queue": "darkpool"}, entries[3].ContextMap())
}
