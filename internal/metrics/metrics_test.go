package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	okBefore := testutil.ToFloat64(generationsTotal.WithLabelValues("ok"))
	Observe(Run{Duration: 20 * time.Millisecond, Articles: 3, Assets: 1, Edges: 4, Unresolved: 2})

	assert.Equal(t, okBefore+1, testutil.ToFloat64(generationsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(contentItems.WithLabelValues("article")))
	assert.Equal(t, float64(1), testutil.ToFloat64(contentItems.WithLabelValues("asset")))
	assert.Equal(t, float64(4), testutil.ToFloat64(graphEdges))
	assert.Equal(t, float64(2), testutil.ToFloat64(unresolvedLinks))
}

func TestObserveFailureKeepsLastGauges(t *testing.T) {
	Observe(Run{Articles: 5, Edges: 7})
	errBefore := testutil.ToFloat64(generationsTotal.WithLabelValues("error"))

	Observe(Run{Articles: 0, Edges: 0, Err: errors.New("boom")})

	assert.Equal(t, errBefore+1, testutil.ToFloat64(generationsTotal.WithLabelValues("error")))
	assert.Equal(t, float64(5), testutil.ToFloat64(contentItems.WithLabelValues("article")))
	assert.Equal(t, float64(7), testutil.ToFloat64(graphEdges))
}
