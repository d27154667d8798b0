package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "scribe-test", Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewSpanWithoutProvider(t *testing.T) {
	span, ctx := NewSpan(context.Background(), "test.span")
	require.NotNil(t, ctx)
	span.SetError(nil)
	span.SetError(errors.New("boom"))
	span.End()

	// The no-op provider yields no valid span context.
	assert.Empty(t, TraceIDFromContext(ctx))
}

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(Mutations.WithLabelValues("test_kind", "error"))
	RecordMutation("test_kind", errors.New("failed"))
	assert.Equal(t, before+1, testutil.ToFloat64(Mutations.WithLabelValues("test_kind", "error")))

	beforeOK := testutil.ToFloat64(Mutations.WithLabelValues("test_kind", "ok"))
	RecordMutation("test_kind", nil)
	assert.Equal(t, beforeOK+1, testutil.ToFloat64(Mutations.WithLabelValues("test_kind", "ok")))
}

func TestTrackQuery(t *testing.T) {
	done := TrackQuery("select", "test_table")
	done()
	assert.GreaterOrEqual(t, testutil.CollectAndCount(DatabaseQueryLatency, "scribe_database_query_latency_seconds"), 1)
}

func TestRepoLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rl := NewRepoLogger("posts", logger)

	rl.LogCreate(context.Background(), slog.Uint64("post_id", 3))
	assert.Contains(t, buf.String(), "table=posts")
	assert.Contains(t, buf.String(), "operation=create")
	assert.Contains(t, buf.String(), "post_id=3")

	buf.Reset()
	rl.LogError(context.Background(), errors.New("disk full"), "update")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "disk full")
}
