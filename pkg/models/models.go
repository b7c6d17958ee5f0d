package models

// LeaseRecord represents one parsed block of an ISC dhcpd.leases file.
// Every field is nil when its pattern found nothing in the block.
type LeaseRecord struct {
	IP                    *string `json:"ip"`
	Starts                *string `json:"starts"`
	Ends                  *string `json:"ends"`
	Tstp                  *string `json:"tstp"`
	Cltt                  *string `json:"cltt"`
	MAC                   *string `json:"mac"`
	VendorClassIdentifier *string `json:"vendorClassIdentifier"`
}

// ARecord is a name to IPv4 mapping taken from a zone file line
type ARecord struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
}

// CNAMERecord is an alias taken from a zone file line
type CNAMERecord struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// ZoneRecordSet is the result of scanning one zone file
type ZoneRecordSet struct {
	Domain           string        `json:"domain"`
	ModificationDate string        `json:"modificationDate"`
	ARecords         []ARecord     `json:"aRecords"`
	CNAMEs           []CNAMERecord `json:"cnames"`
}

// CommandResult holds the outcome of a one-shot external command
type CommandResult struct {
	ExitCode int    `json:"exitCode"`
	Output   string `json:"output"`
}

// Success reports whether the command exited with status 0
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}
