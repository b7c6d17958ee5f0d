package zone

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"dnsdhcpapi/internal/domain"
	"dnsdhcpapi/internal/metrics"
	"dnsdhcpapi/pkg/models"
)

var log = logrus.WithField("prefix", "zone")

// UnknownModificationDate is reported when the zone file mtime can't be read
const UnknownModificationDate = "unknown"

// modificationDateLayout matches the output of `stat -c %y`
const modificationDateLayout = "2006-01-02 15:04:05.000000000 -0700"

var (
	// ErrInvalidDomain is returned before any file access for a malformed name
	ErrInvalidDomain = errors.New("Invalid domain")
	// ErrZoneNotFound means the zone file is missing or unreadable
	ErrZoneNotFound = errors.New("Zone was not found on DNS server")
)

// Loader maps validated domain names to zone files under a directory
type Loader struct {
	zoneDir string
	prefix  string

	modTime func(path string) (time.Time, error)
}

// NewLoader creates a loader reading <zoneDir>/<prefix><domain>
func NewLoader(zoneDir, prefix string) *Loader {
	return &Loader{
		zoneDir: zoneDir,
		prefix:  prefix,
		modTime: fileModTime,
	}
}

// Path returns the zone file location for domain
func (l *Loader) Path(domainName string) string {
	return filepath.Join(l.zoneDir, l.prefix+domainName)
}

// Load validates domainName, then reads and scans its zone file
func (l *Loader) Load(domainName string) (*models.ZoneRecordSet, error) {
	if !domain.IsValid(domainName) {
		return nil, ErrInvalidDomain
	}

	path := l.Path(domainName)
	if _, err := os.Stat(path); err != nil {
		log.Debugf("Zone file %s for %s not available: %v", path, domainName, err)
		return nil, fmt.Errorf("%w: %v", ErrZoneNotFound, err)
	}

	modificationDate := l.modificationDate(path)

	content, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("Error reading zone file %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrZoneNotFound, err)
	}

	aRecords, cnames := ExtractRecords(string(content))
	metrics.ZoneRecords.WithLabelValues(LineA.String()).Add(float64(len(aRecords)))
	metrics.ZoneRecords.WithLabelValues(LineCNAME.String()).Add(float64(len(cnames)))

	return &models.ZoneRecordSet{
		Domain:           domainName,
		ModificationDate: modificationDate,
		ARecords:         aRecords,
		CNAMEs:           cnames,
	}, nil
}

// modificationDate never fails; lookup errors degrade to UnknownModificationDate
func (l *Loader) modificationDate(path string) string {
	t, err := l.modTime(path)
	if err != nil {
		log.Warnf("Failed to retrieve modification date of %s: %v", path, err)
		return UnknownModificationDate
	}
	return t.Format(modificationDateLayout)
}

func fileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
