// Package metrics holds the Prometheus instruments for the contact form.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected" // CSRF or malformed request
)

var (
	FormEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_form_events_total",
			Help: "Form events processed, by event (change, blur, submit, reset).",
		}, []string{"event"})

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_form_submissions_total",
			Help: "Submit attempts, by outcome.",
		}, []string{"outcome"})

	ValidationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_form_validation_errors_total",
			Help: "Fields failing validation on a submit attempt, by field.",
		}, []string{"field"})
)

func init() {
	prometheus.MustRegister(
		FormEvents,
		Submissions,
		ValidationErrors,
	)
}

// ObserveSubmit records one submit attempt.  failed lists the fields that
// did not validate; empty means the submit was accepted.
func ObserveSubmit(failed []string) {
	FormEvents.WithLabelValues("submit").Inc()
	if len(failed) == 0 {
		Submissions.WithLabelValues(OutcomeAccepted).Inc()
		return
	}
	Submissions.WithLabelValues(OutcomeInvalid).Inc()
	for _, f := range failed {
		ValidationErrors.WithLabelValues(f).Inc()
	}
}
