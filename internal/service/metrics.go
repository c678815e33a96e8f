package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveryRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robomover_discovery_runs_total",
		Help: "Discovery runs by outcome",
	}, []string{"outcome"})

	companiesDiscoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "robomover_companies_discovered_total",
		Help: "Companies turned into open inquiries by discovery",
	})

	callsDispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robomover_calls_dispatched_total",
		Help: "Outbound call dispatch attempts by outcome",
	}, []string{"outcome"})

	webhookReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robomover_webhook_reports_total",
		Help: "End-of-call reports by outcome",
	}, []string{"outcome"})
)
