package logger

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(Replace(zap.New(core)))
	return logs
}

func TestError_AttachesKind(t *testing.T) {
	logs := observe(t)

	Error(domain.NewConsistencyError("apply", errors.New("share count mismatch")), zap.String("transition", "Deposit"))
	Error(errors.New("plain"))
	Error(nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "consistency error: apply: share count mismatch", entries[0].Message)
	assert.Equal(t, "consistency", entries[0].ContextMap()["error_kind"])
	assert.Equal(t, "Deposit", entries[0].ContextMap()["transition"])

	assert.Equal(t, "plain", entries[1].Message)
	assert.NotContains(t, entries[1].ContextMap(), "error_kind")

	assert.Equal(t, "error occurred", entries[2].Message)
}

func TestFields(t *testing.T) {
	logs := observe(t)

	id := uuid.MustParse("0b6a6f1e-3a52-4a8c-9d1f-2f3c6b1e0a11")
	Info("registered", AccountID(id), Scalar("seed", domain.NewScalar(42)))

	entry := logs.All()[0]
	assert.Equal(t, id.String(), entry.ContextMap()["account_id"])
	assert.Equal(t, "42", entry.ContextMap()["seed"])
}

func TestInitialize_WithoutSentry(t *testing.T) {
	t.Cleanup(Replace(log))

	require.NoError(t, Initialize(Config{Debug: true, Service: "darkpool-indexer"}))
	assert.True(t, Default().Core().Enabled(zapcore.DebugLevel))
	assert.Nil(t, sentryClient)
}
