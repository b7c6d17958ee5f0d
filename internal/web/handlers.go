package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"dnsdhcpapi/internal/dhcp"
	"dnsdhcpapi/internal/static"
	"dnsdhcpapi/internal/zone"
)

const rootPage = "<h1>dhcp dns api</h1> DHCP leases, reservations and DNS zone details over HTTP."

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string  `json:"error"`
	Output *string `json:"output,omitempty"`
}

// MessageResponse is the body of successful zone, flush and DDNS requests
type MessageResponse struct {
	Message interface{} `json:"message"`
	Output  *string     `json:"output,omitempty"`
}

// StatusResponse describes the running service
type StatusResponse struct {
	Build   BuildInfo             `json:"build"`
	Watched map[string]*time.Time `json:"watched"`
}

// handleRoot serves a small banner page
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(rootPage))
}

// handleLeasesAPI handles DHCP leases API requests
func (s *Server) handleLeasesAPI(w http.ResponseWriter, r *http.Request) {
	leases, err := s.leases.Leases()
	if err != nil {
		if errors.Is(err, dhcp.ErrLeasesUnavailable) {
			s.writeJSONError(w, dhcp.ErrLeasesUnavailable.Error(), http.StatusNotFound)
			return
		}
		s.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("Found %d DHCP leases", len(leases))
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"leases": leases})
}

// handleReservationsAPI handles dhcpd.conf host reservation requests
func (s *Server) handleReservationsAPI(w http.ResponseWriter, r *http.Request) {
	reservations, err := s.reservations.Reservations()
	if err != nil {
		if errors.Is(err, static.ErrConfigUnavailable) {
			s.writeJSONError(w, static.ErrConfigUnavailable.Error(), http.StatusNotFound)
			return
		}
		s.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("Found %d host reservations", len(reservations))
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"reservations": reservations})
}

// handleZoneDetailsAPI returns the A and CNAME records of one zone
func (s *Server) handleZoneDetailsAPI(w http.ResponseWriter, r *http.Request) {
	domainName := mux.Vars(r)["domain"]

	set, err := s.zones.Load(domainName)
	switch {
	case errors.Is(err, zone.ErrInvalidDomain):
		s.writeJSONError(w, zone.ErrInvalidDomain.Error(), http.StatusBadRequest)
	case errors.Is(err, zone.ErrZoneNotFound):
		s.writeJSONError(w, zone.ErrZoneNotFound.Error(), http.StatusNotFound)
	case err != nil:
		log.Errorf("Failed to load zone %s: %v", domainName, err)
		s.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	default:
		s.writeJSON(w, http.StatusOK, MessageResponse{Message: set})
	}
}

// handleFlushAPI flushes the name server cache with rndc
func (s *Server) handleFlushAPI(w http.ResponseWriter, r *http.Request) {
	result := s.runner.Run(s.cfg.Rndc, "flush")
	if !result.Success() {
		s.writeJSONError(w, "Failed to flush DNS", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "DNS flushed successfully"})
}

// handleDDNSStateAPI returns the dynamic DNS updater's last state
func (s *Server) handleDDNSStateAPI(w http.ResponseWriter, r *http.Request) {
	state, err := s.ddns.State()
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{Message: state})
}

// handleDDNSRunAPI runs the dynamic DNS updater, forced on /run/force
func (s *Server) handleDDNSRunAPI(w http.ResponseWriter, r *http.Request) {
	force := strings.HasSuffix(strings.ToLower(r.URL.Path), "/run/force")

	result := s.ddns.Run(force)
	output := result.Output
	if !result.Success() {
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Failed to run CloudflareDDNS",
			Output: &output,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{
		Message: "CloudflareDDNS ran successfully",
		Output:  &output,
	})
}

// handleStatusAPI reports build information and watched file activity
func (s *Server) handleStatusAPI(w http.ResponseWriter, r *http.Request) {
	watched := map[string]*time.Time{}
	if s.monitor != nil {
		watched = s.monitor.Status()
	}

	s.writeJSON(w, http.StatusOK, StatusResponse{Build: s.build, Watched: watched})
}

// writeJSON encodes v as the response body with the given status
func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// Helper function to write JSON error responses
func (s *Server) writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, ErrorResponse{Error: message})
}
