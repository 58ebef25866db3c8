package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMetrics_Observe(t *testing.T) {
	registry := NewRegistry()
	m := NewAuthMetrics(registry)

	m.ObserveRegistration("speaker", OutcomeSuccess)
	m.ObserveRegistration("speaker", OutcomeSuccess)
	m.ObserveRegistration("", OutcomeValidationFailed)
	m.ObserveLogin(OutcomeInvalidCredentials)
	m.ObserveSessionResolution(OutcomeRejected)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Registrations.WithLabelValues("speaker", OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Registrations.WithLabelValues("unknown", OutcomeValidationFailed)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Logins.WithLabelValues(OutcomeInvalidCredentials)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SessionResolutions.WithLabelValues(OutcomeRejected)), 0)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "podium_registrations_total")
	assert.Contains(t, names, "go_goroutines")
}

func TestAuthMetrics_NilIsNoop(t *testing.T) {
	var m *AuthMetrics

	assert.NotPanics(t, func() {
		m.ObserveRegistration("individual", OutcomeSuccess)
		m.ObserveLogin(OutcomeSuccess)
		m.ObserveSessionResolution(OutcomeResolved)
	})
}
