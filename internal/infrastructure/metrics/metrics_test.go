package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ProcessingMovesCreated.Inc()
	m.ReconciliationsCreated.WithLabelValues("process").Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProcessingMovesCreated))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ReconciliationsCreated.WithLabelValues("process")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
