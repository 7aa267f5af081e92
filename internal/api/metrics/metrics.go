// Package metrics defines the application's Prometheus metrics.
//
// New registers every metric on the given registerer, so tests can build
// independent instances on a fresh registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// Result label values.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
	ResultRejected    = "rejected"
)

// Channel label values.
const (
	ChannelWeb = "web"
	ChannelAPI = "api"
)

type Metrics struct {
	// RegistrationsTotal is labelled by result: ok, invalid or error.
	RegistrationsTotal *prometheus.CounterVec

	// LoginsTotal is labelled by channel (web, api) and result (ok, invalid, unavailable).
	LoginsTotal *prometheus.CounterVec

	// TokenVerificationsTotal is labelled by result: ok or rejected.
	TokenVerificationsTotal *prometheus.CounterVec

	// ProfileScreensTotal is labelled by page: posts, followers or following.
	ProfileScreensTotal *prometheus.CounterVec

	// FollowChangesTotal is labelled by action (follow, unfollow) and result.
	FollowChangesTotal *prometheus.CounterVec

	// PostsCreatedTotal is labelled by channel.
	PostsCreatedTotal *prometheus.CounterVec

	// ProfileDataDuration measures the concurrent count fetch of a profile.
	ProfileDataDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RegistrationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Total number of registration attempts, by result.",
			},
			[]string{"result"},
		),
		LoginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total number of login attempts, by channel and result.",
			},
			[]string{"channel", "result"},
		),
		TokenVerificationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_verifications_total",
				Help:      "Total number of API token checks, by result.",
			},
			[]string{"result"},
		),
		ProfileScreensTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "profile_screens_total",
				Help:      "Total number of profile screens rendered, by page.",
			},
			[]string{"page"},
		),
		FollowChangesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "follow_changes_total",
				Help:      "Total number of follow and unfollow requests, by action and result.",
			},
			[]string{"action", "result"},
		),
		PostsCreatedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "posts_created_total",
				Help:      "Total number of posts created, by channel.",
			},
			[]string{"channel"},
		),
		ProfileDataDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "profile_data_duration_seconds",
				Help:      "Duration of the shared profile data fetch.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}
