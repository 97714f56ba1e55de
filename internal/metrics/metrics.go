package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_in_flight_requests", Help: "In-flight HTTP requests"},
	)
	MailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mail_sent_total", Help: "Outbound notification emails"},
		[]string{"kind", "status"},
	)
	NotificationsFanout = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "idea_notifications_total", Help: "Notification rows created by fan-out"},
		[]string{"type"},
	)
)

func MustRegister() {
	prometheus.MustRegister(RequestsTotal, ReqDuration, InFlight, MailsSent, NotificationsFanout)
}
