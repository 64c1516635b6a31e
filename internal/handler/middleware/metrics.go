package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// authDecisions counts API key authentication outcomes. Outcome labels:
// allowed, denied_missing, denied_unknown, denied_revoked, denied_expired,
// denied_rate_limited, denied_store_error.
var authDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "movie_catalog",
		Subsystem: "apikey_auth",
		Name:      "decisions_total",
		Help:      "API key authentication decisions by outcome.",
	},
	[]string{"outcome"},
)
