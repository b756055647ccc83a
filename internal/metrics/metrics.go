package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TodoOpsCounter counts todo API operations by outcome. The result
// label is one of "success", "invalid", "not_found", or "error".
var TodoOpsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "todo_operations_total",
		Help: "Total todo API operations by operation and result.",
	},
	[]string{"operation", "result"},
)

// Init starts the metrics listener on addr, serving /metrics.
func Init(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}
