package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dnsdhcpapi"

var (
	// RequestCount is the total number of HTTP requests by route and status code
	RequestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Counter of HTTP requests served.",
	}, []string{"route", "code"})

	// RequestDuration is the time taken to serve HTTP requests
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Buckets:   prometheus.DefBuckets,
		Help:      "Histogram of the time (in seconds) each request took.",
	}, []string{"route"})

	// LeasesParsed counts lease blocks turned into records
	LeasesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leases_parsed_total",
		Help:      "Counter of lease blocks parsed from the lease file.",
	})

	// ReservationsParsed counts host declarations read from dhcpd.conf
	ReservationsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_parsed_total",
		Help:      "Counter of host reservations parsed from the DHCP server config.",
	})

	// ZoneRecords counts zone file records surfaced, by record type
	ZoneRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "zone_records_total",
		Help:      "Counter of A and CNAME records extracted from zone files.",
	}, []string{"type"})

	// CommandRuns counts external command executions by outcome
	CommandRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Counter of external commands run, by result.",
	}, []string{"command", "result"})

	// FileEvents counts change notifications on watched files
	FileEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "file_events_total",
		Help:      "Counter of file system events on watched paths.",
	}, []string{"file", "op"})
)
