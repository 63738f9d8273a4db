package store

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clay-Ferguson/quanta-docs/pkg/metrics"
)

func TestEngineOpsRecordCountAndDuration(t *testing.T) {
	metrics.InitRegistry()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Mkdir(ctx, 1, "", "notes", testRoot, 1, false)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body),
		`quanta_engine_operations_total{operation="mkdir",outcome="ok"} 1`)
	assert.Contains(t, string(body),
		`quanta_engine_operation_duration_seconds_count{operation="mkdir"} 1`)
}
