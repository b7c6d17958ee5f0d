package dhcp

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"dnsdhcpapi/internal/metrics"
	"dnsdhcpapi/pkg/models"
)

var log = logrus.WithField("prefix", "dhcp")

// ErrLeasesUnavailable means the lease file is missing or unreadable.
// It is distinct from a readable file holding no leases.
var ErrLeasesUnavailable = errors.New("DHCP leases file not found or can not be read")

// Parser handles DHCP lease file parsing
type Parser struct {
	leasesFile string
}

// NewParser creates a new DHCP parser reading leasesFile on every call
func NewParser(leasesFile string) *Parser {
	return &Parser{
		leasesFile: leasesFile,
	}
}

// Leases reads the lease file and parses every block in file order.
// Repeated blocks for one address are all returned.
func (p *Parser) Leases() ([]models.LeaseRecord, error) {
	content, err := os.ReadFile(p.leasesFile)
	if err != nil {
		log.Warnf("Error reading file %s: %v", p.leasesFile, err)
		return nil, fmt.Errorf("%w: %v", ErrLeasesUnavailable, err)
	}

	leases := ParseLeases(string(content))
	metrics.LeasesParsed.Add(float64(len(leases)))
	log.Debugf("Parsed %d lease blocks from %s", len(leases), p.leasesFile)

	return leases, nil
}

// ParseLeases parses DHCP lease data from string content
func ParseLeases(content string) []models.LeaseRecord {
	blocks := SplitBlocks(content)
	leases := make([]models.LeaseRecord, 0, len(blocks))

	for _, block := range blocks {
		leases = append(leases, parseLeaseBlock(block))
	}

	return leases
}

// parseLeaseBlock extracts all seven fields of a single lease block
func parseLeaseBlock(block string) models.LeaseRecord {
	lease := models.LeaseRecord{
		IP:     ExtractField(FieldIP, block),
		Starts: ExtractField(FieldStarts, block),
		Ends:   ExtractField(FieldEnds, block),
		Tstp:   ExtractField(FieldTstp, block),
		Cltt:   ExtractField(FieldCltt, block),
	}

	if hv, ok := ExtractHardwareVendor(block); ok {
		lease.MAC = &hv.MAC
		lease.VendorClassIdentifier = &hv.Vendor
	}

	return lease
}
