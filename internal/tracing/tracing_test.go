// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tracing_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"code.hybscloud.com/chain"
	"code.hybscloud.com/chain/internal/sample"
	"code.hybscloud.com/chain/internal/tracing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDisabledProviderIsNoop(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p, err := tracing.Init(context.Background(), tracing.Config{ServiceName: "test"}, zap.New(core))
	require.NoError(t, err)
	defer func() { require.NoError(t, p.Shutdown(context.Background())) }()

	ctx := chain.WithInstrument(context.Background(), chain.Tracer(p.Tracer()))
	got, err := sample.Compute(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 9, got)
	assert.Zero(t, logs.Len())
}

func TestEnabledProviderLogsSpanClose(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p, err := tracing.Init(context.Background(), tracing.Config{
		ServiceName: "test",
		Enabled:     true,
	}, zap.New(core))
	require.NoError(t, err)

	ctx := chain.WithInstrument(context.Background(), chain.Tracer(p.Tracer()))
	_, err = sample.ComputeStrict(ctx, 2)
	require.ErrorIs(t, err, sample.ErrOdd)
	require.NoError(t, p.Shutdown(context.Background()))

	closed := logs.FilterMessage("span close").AllUntimed()
	require.Len(t, closed, 2)
	assert.Equal(t, zapcore.InfoLevel, closed[0].Level)
	assert.Equal(t, "sample.AddOne", closed[0].ContextMap()["span"])
	assert.Equal(t, zapcore.WarnLevel, closed[1].Level)
	assert.Equal(t, "sample.RequireEven", closed[1].ContextMap()["span"])
	assert.Contains(t, closed[1].ContextMap()["status"], "odd input")
	assert.Equal(t, "2", closed[1].ContextMap()[string(chain.AttrStepIndex)])
}

func TestEnabledProviderExportsToOTLPEndpoint(t *testing.T) {
	var exports atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			_, _ = io.Copy(io.Discard, r.Body)
			exports.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p, err := tracing.Init(context.Background(), tracing.Config{
		ServiceName:  "test",
		OTLPEndpoint: strings.TrimPrefix(srv.URL, "http://"),
		Enabled:      true,
	}, zap.NewNop())
	require.NoError(t, err)

	ctx := chain.WithInstrument(context.Background(), chain.Tracer(p.Tracer()))
	got, err := sample.Compute(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 9, got)

	// Shutdown flushes the batcher, so the spans are exported before it returns.
	require.NoError(t, p.Shutdown(context.Background()))
	assert.GreaterOrEqual(t, exports.Load(), int32(1))
}
