// Package metrics collects and exposes Prometheus metrics for the LMS core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/simple-lms-api/internal/models"
)

// Recorder is the metrics surface used by the services
type Recorder interface {
	RecordActivity(activity models.ActivityType)
	RecordLogin(success bool)
	RecordGeneration(outcome string)
}

// Collector records metrics on a Prometheus registry
type Collector struct {
	activities  *prometheus.CounterVec
	logins      *prometheus.CounterVec
	generations *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		activities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lms_activity_total",
			Help: "Audited activities by kind",
		}, []string{"activity"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lms_login_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lms_ai_generation_total",
			Help: "AI lesson description requests by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.activities, c.logins, c.generations)
	return c
}

// RecordActivity counts an audited activity
func (c *Collector) RecordActivity(activity models.ActivityType) {
	c.activities.WithLabelValues(string(activity)).Inc()
}

// RecordLogin counts a login attempt
func (c *Collector) RecordLogin(success bool) {
	result := "not_found"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// RecordGeneration counts an AI generation request
func (c *Collector) RecordGeneration(outcome string) {
	c.generations.WithLabelValues(outcome).Inc()
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Nop discards all metrics
type Nop struct{}

func (Nop) RecordActivity(models.ActivityType) {}
func (Nop) RecordLogin(bool)                   {}
func (Nop) RecordGeneration(string)            {}
