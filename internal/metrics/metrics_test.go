package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestInstrumentCountsRequests(t *testing.T) {
	m := New()

	handler := m.Instrument("/task/my", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	ctx := &fasthttp.RequestCtx{}
	var req fasthttp.Request
	req.Header.SetMethod("GET")
	req.SetRequestURI("/task/my")
	ctx.Init(&req, nil, nil)

	handler(ctx)
	handler(ctx)

	count := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/task/my", "200"))
	assert.Equal(t, float64(2), count)
}

func TestObserveGeneration(t *testing.T) {
	m := New()

	m.ObserveGeneration(nil)
	m.ObserveGeneration(errors.New("boom"))
	m.ObserveGeneration(nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.generationCalls.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.generationCalls.WithLabelValues("error")))
}
