package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "itemsapi", Name: "http_requests_total", Help: "Number of HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	TokenVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "itemsapi", Name: "token_verifications_total", Help: "Token verification attempts by source and result."},
		[]string{"source", "result"},
	)
	ItemOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "itemsapi", Name: "item_operations_total", Help: "Item store operations by operation and outcome."},
		[]string{"op", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(TokenVerifications)
	reg.MustRegister(ItemOperations)
}
