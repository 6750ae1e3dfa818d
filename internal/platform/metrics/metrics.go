// Package metrics exposes the process-wide Prometheus endpoint.
package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eportfolio"

// Registry bundles the registerer services record into and the gatherer /metrics serves.
type Registry struct {
	reg       *prometheus.Registry
	buildInfo *prometheus.GaugeVec
}

// NewRegistry returns an empty application registry. Go runtime and process
// collectors come from the default registry, so they are not added here.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	return &Registry{
		reg: reg,
		buildInfo: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build version and environment of the running server",
		}, []string{"version", "environment"}),
	}
}

// Registerer is passed to metric constructors such as portfolio metrics.New.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.reg
}

// SetBuildInfo publishes a constant 1 labelled with version and environment.
func (r *Registry) SetBuildInfo(version, environment string) {
	r.buildInfo.WithLabelValues(version, environment).Set(1)
}

// RegisterDB exports database/sql pool statistics for db.
func (r *Registry) RegisterDB(db *sql.DB) error {
	return r.reg.Register(collectors.NewDBStatsCollector(db, namespace))
}

// Handler serves this registry together with the default one, where
// package-level promauto collectors (transaction and redis pool metrics) live.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.Gatherers{r.reg, prometheus.DefaultGatherer}, promhttp.HandlerOpts{})
}
