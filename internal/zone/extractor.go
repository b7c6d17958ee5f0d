package zone

import (
	"strings"

	"dnsdhcpapi/pkg/models"
)

// ExtractRecords scans zone file content line by line and collects the
// A and CNAME records in file order. Duplicates are kept. Other record
// types, multi-line records and relative names are left as they are.
func ExtractRecords(content string) ([]models.ARecord, []models.CNAMERecord) {
	aRecords := []models.ARecord{}
	cnames := []models.CNAMERecord{}

	for _, line := range strings.Split(content, "\n") {
		c := ClassifyLine(line)

		switch c.Kind {
		case LineA:
			aRecords = append(aRecords, models.ARecord{Name: c.Name, IP: c.Value})
		case LineCNAME:
			cnames = append(cnames, models.CNAMERecord{Name: c.Name, Alias: c.Value})
		}
	}

	return aRecords, cnames
}
