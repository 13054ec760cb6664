// Package metrics exposes Prometheus counters for the ordering engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PinsCreated counts successful pin creations.
	PinsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pinboard",
		Subsystem: "pins",
		Name:      "created_total",
		Help:      "Total number of pins created",
	})

	// CapRejections counts pin creations rejected by the per-scope cap.
	CapRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pinboard",
		Subsystem: "pins",
		Name:      "cap_rejections_total",
		Help:      "Total number of pin creations rejected by the scope cap",
	})

	// StarsCreated counts successful star creations, deduplicated ones excluded.
	StarsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pinboard",
		Subsystem: "stars",
		Name:      "created_total",
		Help:      "Total number of stars created",
	})

	// StarsDeduplicated counts star creations resolved to an existing row.
	StarsDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pinboard",
		Subsystem: "stars",
		Name:      "deduplicated_total",
		Help:      "Total number of star creations that returned an existing star",
	})

	// BackfilledRows counts index assignments performed by backfill, per entity.
	BackfilledRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pinboard",
		Subsystem: "backfill",
		Name:      "rows_total",
		Help:      "Total number of rows assigned an index by backfill",
	}, []string{"entity"})

	// RebalancedRows counts index rewrites performed by rebalancing, per entity.
	RebalancedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pinboard",
		Subsystem: "rebalance",
		Name:      "rows_total",
		Help:      "Total number of rows renumbered by rebalancing",
	}, []string{"entity"})
)
