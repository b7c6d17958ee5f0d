package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"dnsdhcpapi/internal/command"
	"dnsdhcpapi/internal/config"
	"dnsdhcpapi/internal/ddns"
	"dnsdhcpapi/internal/dhcp"
	"dnsdhcpapi/internal/metrics"
	"dnsdhcpapi/internal/monitor"
	"dnsdhcpapi/internal/static"
	"dnsdhcpapi/internal/zone"
)

var log = logrus.WithField("prefix", "web")

// BuildInfo identifies the running binary
type BuildInfo struct {
	Repo   string `json:"repo"`
	Commit string `json:"commit"`
	Time   string `json:"time"`
}

// Server represents the HTTP server
type Server struct {
	cfg          *config.Config
	leases       *dhcp.Parser
	reservations *static.Parser
	zones        *zone.Loader
	ddns         *ddns.Updater
	runner       command.Runner
	monitor      *monitor.Monitor
	build        BuildInfo

	router *mux.Router
	srv    *http.Server
}

// NewServer creates a new web server. mon may be nil when watching is disabled.
func NewServer(cfg *config.Config, runner command.Runner, mon *monitor.Monitor, build BuildInfo) *Server {
	server := &Server{
		cfg:          cfg,
		leases:       dhcp.NewParser(cfg.LeasesFile),
		reservations: static.NewParser(cfg.DhcpdConfigFile),
		zones:        zone.NewLoader(cfg.ZoneDir, cfg.ZonePrefix),
		ddns:         ddns.NewUpdater(runner, cfg.DDNSStateFile, cfg.DDNSInterpreter, cfg.DDNSScript, cfg.DDNSZones),
		runner:       runner,
		monitor:      mon,
		build:        build,
		router:       mux.NewRouter(),
	}

	server.setupRoutes()
	server.srv = &http.Server{
		Addr:              cfg.HTTPListen,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server. A later Start returns at once.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// setupRoutes configures HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.instrument)

	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	s.router.HandleFunc("/dhcpd/leases", s.handleLeasesAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/dhcpd/leases/", s.handleLeasesAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/dhcpd/reservations", s.handleReservationsAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/dhcpd/reservations/", s.handleReservationsAPI).Methods(http.MethodGet)

	s.router.HandleFunc("/zone-details/{domain}", s.handleZoneDetailsAPI).Methods(http.MethodGet)

	s.router.HandleFunc("/flush-bind-dns", s.handleFlushAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/flush-bind-dns/", s.handleFlushAPI).Methods(http.MethodGet)

	s.router.HandleFunc("/cloudflare-ddns", s.handleDDNSStateAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/cloudflare-ddns/", s.handleDDNSStateAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/cloudflare-ddns/run", s.handleDDNSRunAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/cloudflare-ddns/run/force", s.handleDDNSRunAPI).Methods(http.MethodGet)

	s.router.HandleFunc("/status", s.handleStatusAPI).Methods(http.MethodGet)

	if s.cfg.Metrics {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument logs every request and records its metrics under the route template
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Infof("Request from %s: %s", r.RemoteAddr, r.URL.String())

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		metrics.RequestCount.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
