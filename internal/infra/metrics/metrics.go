// Package metrics exposes Prometheus collectors for the identity service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome label values.
const (
	OutcomeSuccess            = "success"
	OutcomeValidationFailed   = "validation_failed"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
	OutcomeResolved           = "resolved"
	OutcomeRejected           = "rejected"
)

// NewRegistry creates a private registry with the standard Go and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return registry
}

// AuthMetrics counts registration, login and session outcomes.
// A nil *AuthMetrics is valid and records nothing.
type AuthMetrics struct {
	Registrations      *prometheus.CounterVec
	Logins             *prometheus.CounterVec
	SessionResolutions *prometheus.CounterVec
}

// NewAuthMetrics creates and registers the auth counters.
func NewAuthMetrics(registry *prometheus.Registry) *AuthMetrics {
	m := &AuthMetrics{
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podium_registrations_total",
				Help: "Total number of registration attempts by account type and outcome",
			},
			[]string{"account_type", "outcome"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podium_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		SessionResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podium_session_resolutions_total",
				Help: "Total number of session resolutions by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(m.Registrations, m.Logins, m.SessionResolutions)

	return m
}

// ObserveRegistration records one registration attempt.
func (m *AuthMetrics) ObserveRegistration(accountType, outcome string) {
	if m == nil {
		return
	}
	if accountType == "" {
		accountType = "unknown"
	}

	m.Registrations.WithLabelValues(accountType, outcome).Inc()
}

// ObserveLogin records one login attempt.
func (m *AuthMetrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}

	m.Logins.WithLabelValues(outcome).Inc()
}

// ObserveSessionResolution records one session resolution.
func (m *AuthMetrics) ObserveSessionResolution(outcome string) {
	if m == nil {
		return
	}

	m.SessionResolutions.WithLabelValues(outcome).Inc()
}
