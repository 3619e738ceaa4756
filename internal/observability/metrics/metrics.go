package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SiteMetrics exposes counters/histograms for page and contact flows.
type SiteMetrics struct {
	pageViews         *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
	webhookTotal      *prometheus.CounterVec
	webhookLatency    *prometheus.HistogramVec
	rateLimitedTotal  *prometheus.CounterVec
	submissionLogFail prometheus.Counter
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		pageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "pages",
			Name:      "views_total",
			Help:      "Total rendered page views",
		}, []string{"page"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by terminal status",
		}, []string{"status"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "contact",
			Name:      "webhook_responses_total",
			Help:      "Outbound webhook calls by response class",
		}, []string{"class"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "site",
			Subsystem: "contact",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of outbound contact webhook calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"class"}),
		rateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the contact rate limiter",
		}, []string{"limiter"}),
		submissionLogFail: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "contact",
			Name:      "submission_log_failures_total",
			Help:      "Submission attempts that could not be written to the log",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.pageViews, m.submissionsTotal, m.webhookTotal, m.webhookLatency, m.rateLimitedTotal, m.submissionLogFail)
	return m
}

func (m *SiteMetrics) ObservePageView(page string) {
	if m == nil {
		return
	}
	m.pageViews.WithLabelValues(page).Inc()
}

func (m *SiteMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

// ObserveWebhook records one outbound call. A zero code means the request
// never produced a response.
func (m *SiteMetrics) ObserveWebhook(code int, seconds float64) {
	if m == nil {
		return
	}
	class := StatusClass(code)
	m.webhookTotal.WithLabelValues(class).Inc()
	m.webhookLatency.WithLabelValues(class).Observe(seconds)
}

func (m *SiteMetrics) ObserveRateLimited(limiter string) {
	if m == nil {
		return
	}
	m.rateLimitedTotal.WithLabelValues(limiter).Inc()
}

func (m *SiteMetrics) ObserveSubmissionLogFailure() {
	if m == nil {
		return
	}
	m.submissionLogFail.Inc()
}

// StatusClass buckets an HTTP status code into "2xx", "4xx", ... or "transport".
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "transport"
	}
	return strconv.Itoa(code/100) + "xx"
}
