// Package promhooks exports heavyselect cache events as Prometheus metrics.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/unkn0wn-root/heavyselect"
)

var (
	configsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "heavyselect_configs_stored_total",
			Help: "Total number of widget configurations written to the cache",
		},
	)

	encodeErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "heavyselect_config_encode_errors_total",
			Help: "Total number of configurations rejected by the codec at store time",
		},
	)

	loadMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "heavyselect_load_misses_total",
			Help: "Total number of search requests whose configuration key had no live entry",
		},
	)

	selfHeals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heavyselect_self_heals_total",
			Help: "Total number of cache entries deleted on read",
		},
		[]string{"reason"}, // "corrupt", "key_mismatch", "value_decode"
	)

	setRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "heavyselect_provider_set_rejected_total",
			Help: "Total number of Set calls rejected by the provider under pressure",
		},
	)

	providerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heavyselect_provider_errors_total",
			Help: "Total number of provider I/O errors",
		},
		[]string{"operation"}, // "get", "set", "del"
	)
)

// Hooks counts cache events on the default Prometheus registry.
type Hooks struct{}

var _ heavyselect.Hooks = Hooks{}

func (Hooks) ConfigStored(string)             { configsStored.Inc() }
func (Hooks) ConfigEncodeError(string, error) { encodeErrors.Inc() }
func (Hooks) LoadMiss(string)                 { loadMisses.Inc() }
func (Hooks) SelfHeal(_, reason string)       { selfHeals.WithLabelValues(reason).Inc() }
func (Hooks) ProviderSetRejected(string)      { setRejected.Inc() }
func (Hooks) ProviderError(op string, _ error) {
	providerErrors.WithLabelValues(op).Inc()
}
