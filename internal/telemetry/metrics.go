// Package telemetry owns the Prometheus collectors exported on /metrics.
package telemetry

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AlertsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediguard",
		Name:      "alerts_created_total",
		Help:      "Alerts inserted, by alert type.",
	}, []string{"alert_type"})

	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediguard",
		Name:      "stock_adjustments_total",
		Help:      "Stock adjustments, by outcome (applied, insufficient, not_found, error).",
	}, []string{"outcome"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediguard",
		Name:      "notifications_total",
		Help:      "Alert emails, by outcome (sent, failed).",
	}, []string{"outcome"})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mediguard",
		Name:      "alert_sweep_duration_seconds",
		Help:      "Wall time of a full alert sweep.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Handler exposes the default registry to gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
