package static

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"dnsdhcpapi/internal/metrics"
	"dnsdhcpapi/pkg/models"
)

var log = logrus.WithField("prefix", "static")

// hostToken starts every host declaration in dhcpd.conf
const hostToken = "host "

// ErrConfigUnavailable means dhcpd.conf is missing or unreadable
var ErrConfigUnavailable = errors.New("DHCP config file not found or can not be read")

var (
	namePattern         = regexp.MustCompile(`^\s*([^\s{;]+)\s*\{`)
	hardwarePattern     = regexp.MustCompile(`hardware ethernet\s+([^;\s]+)\s*;`)
	fixedAddressPattern = regexp.MustCompile(`fixed-address\s+([^;]+);`)
)

// Parser extracts host reservations from the DHCP server configuration.
// The file is read on every call and never written.
type Parser struct {
	filename string
}

// NewParser creates a new reservation parser for filename
func NewParser(filename string) *Parser {
	return &Parser{
		filename: filename,
	}
}

// Reservations reads the config file and returns its host declarations
func (p *Parser) Reservations() ([]models.Reservation, error) {
	content, err := os.ReadFile(p.filename)
	if err != nil {
		log.Warnf("Error reading file %s: %v", p.filename, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	reservations := ParseReservations(string(content))
	metrics.ReservationsParsed.Add(float64(len(reservations)))
	log.Debugf("Parsed %d host reservations from %s", len(reservations), p.filename)

	return reservations, nil
}

// ParseReservations splits content on the host keyword and extracts one
// reservation per declaration. Fragments without a "name {" head are
// dropped; each body ends at its first closing brace.
func ParseReservations(content string) []models.Reservation {
	parts := strings.Split(content, hostToken)
	reservations := make([]models.Reservation, 0, len(parts))

	for _, part := range parts[1:] {
		if r, ok := parseHostBlock(part); ok {
			reservations = append(reservations, r)
		}
	}

	return reservations
}

func parseHostBlock(block string) (models.Reservation, bool) {
	m := namePattern.FindStringSubmatch(block)
	if m == nil {
		return models.Reservation{}, false
	}

	body := block
	if idx := strings.Index(body, "}"); idx >= 0 {
		body = body[:idx]
	}

	r := models.Reservation{Name: m[1]}
	if hw := hardwarePattern.FindStringSubmatch(body); hw != nil {
		r.MAC = &hw[1]
	}
	if fa := fixedAddressPattern.FindStringSubmatch(body); fa != nil {
		addr := strings.TrimSpace(fa[1])
		r.FixedAddress = &addr
	}

	log.Tracef("Parsed reservation %s", &r)
	return r, true
}
