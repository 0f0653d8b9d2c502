package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gate service
type Metrics struct {
	// Verification metrics
	VerificationsTotal prometheus.Counter
	VerificationsGated prometheus.Counter
	OracleFailures     prometheus.Counter

	// Delivery metrics
	DownloadsTotal    prometheus.Counter
	Redeliveries      prometheus.Counter
	DeliveryFailures  *prometheus.CounterVec
	ArtifactsStored   prometheus.Counter

	// Fleet metrics
	ActiveBots prometheus.Gauge

	// Registration metrics
	BotsRegistered     prometheus.Counter
	ChannelsRegistered prometheus.Counter
}

// NewMetrics creates all metrics on the default registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics on the given registry
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VerificationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_verifications_total",
			Help: "Total number of subscription verifications",
		}),
		VerificationsGated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_verifications_gated_total",
			Help: "Verifications that left the user gated behind unmet channels",
		}),
		OracleFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_oracle_failures_total",
			Help: "Membership lookups that failed and were treated as unmet",
		}),
		DownloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_downloads_total",
			Help: "Total number of recorded downloads",
		}),
		Redeliveries: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_redeliveries_total",
			Help: "Deliveries of artifacts the subscriber already had",
		}),
		DeliveryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gate_delivery_failures_total",
			Help: "Artifact dispatch failures by media kind",
		}, []string{"kind"}),
		ArtifactsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_artifacts_stored_total",
			Help: "Artifacts stored from operator uploads",
		}),
		ActiveBots: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gate_fleet_active_bots",
			Help: "Number of bot identities with a running update loop",
		}),
		BotsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_bots_registered_total",
			Help: "Bot identities onboarded through the admin conversation",
		}),
		ChannelsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_channels_registered_total",
			Help: "Channels onboarded through the admin conversation",
		}),
	}
}
