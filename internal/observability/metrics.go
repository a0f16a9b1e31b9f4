package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TableRewrites counts full-table rewrites per table.
	TableRewrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mesa_table_rewrites_total",
		Help: "Number of atomic full-table rewrites",
	}, []string{"table"})

	// TableAppends counts single-record appends per table.
	TableAppends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mesa_table_appends_total",
		Help: "Number of single-record table appends",
	}, []string{"table"})

	// TableErrors counts table-store failures per table and operation.
	TableErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mesa_table_errors_total",
		Help: "Number of table-store I/O failures",
	}, []string{"table", "operation"})

	// RecommendationsServed counts served recommendations per cuisine.
	RecommendationsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mesa_recommendations_served_total",
		Help: "Number of group recommendations served",
	}, []string{"cuisine"})

	// RedisErrors counts Redis command failures per command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mesa_redis_errors_total",
		Help: "Number of Redis command errors",
	}, []string{"command"})
)
