package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashdrawer_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cashdrawer_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	salesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashdrawer_sales_total",
		Help: "Sale attempts by result",
	}, []string{"result"})

	unitsSold = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cashdrawer_units_sold_total",
		Help: "Product units sold",
	})

	grossRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cashdrawer_gross_revenue_total",
		Help: "Tax-inclusive revenue of committed sales",
	})

	sessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashdrawer_session_transitions_total",
		Help: "Drawer session open/close attempts by result",
	}, []string{"transition", "result"})

	drawerOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cashdrawer_drawer_open",
		Help: "1 while a drawer session is open",
	})

	reportJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashdrawer_report_jobs_total",
		Help: "Closing report jobs by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveSale counts a committed sale with its units and gross total.
func ObserveSale(units int, gross decimal.Decimal) {
	salesTotal.WithLabelValues("committed").Inc()
	unitsSold.Add(float64(units))
	f, _ := gross.Float64()
	grossRevenue.Add(f)
}

// ObserveSaleRejected counts a sale that failed with the given reason.
func ObserveSaleRejected(reason string) {
	salesTotal.WithLabelValues(reason).Inc()
}

// ObserveSessionOpen records an open attempt; opened=true sets the gauge.
func ObserveSessionOpen(result string) {
	sessionTransitions.WithLabelValues("open", result).Inc()
	if result == "ok" {
		drawerOpen.Set(1)
	}
}

// ObserveSessionClose records a close attempt; a successful close clears the gauge.
func ObserveSessionClose(result string) {
	sessionTransitions.WithLabelValues("close", result).Inc()
	if result == "ok" {
		drawerOpen.Set(0)
	}
}

// ObserveReportJob counts processed closing report jobs.
func ObserveReportJob(result string) {
	reportJobs.WithLabelValues(result).Inc()
}
