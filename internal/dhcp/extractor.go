package dhcp

import "regexp"

// Field names understood by ExtractField
const (
	FieldIP                    = "ip"
	FieldStarts                = "starts"
	FieldEnds                  = "ends"
	FieldTstp                  = "tstp"
	FieldCltt                  = "cltt"
	FieldMAC                   = "mac"
	FieldVendorClassIdentifier = "vendorClassIdentifier"
)

var (
	// A standalone N.N.N.N run; octet ranges are not checked
	ipPattern = regexp.MustCompile(`\b(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})\b`)

	// hardware ethernet and vendor-class-identifier are matched together,
	// so both are present or both are absent
	hardwareVendorPattern = regexp.MustCompile(`(?s)hardware ethernet (.*?);.*?set vendor-class-identifier = "(.*?)";`)

	timestampPatterns = map[string]*regexp.Regexp{
		FieldStarts: timestampPattern(FieldStarts),
		FieldEnds:   timestampPattern(FieldEnds),
		FieldTstp:   timestampPattern(FieldTstp),
		FieldCltt:   timestampPattern(FieldCltt),
	}
)

// timestampPattern matches "<field> W YYYY/MM/DD HH:MM:SS" and captures
// everything after the field name
func timestampPattern(field string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(field) + ` (\d+ [\d/]+ [\d:]+)`)
}

// HardwareVendor is the MAC and vendor class identifier pair of a lease
type HardwareVendor struct {
	MAC    string
	Vendor string
}

// ExtractHardwareVendor runs the combined hardware/vendor pattern once.
// ok is false when either clause is missing from the block.
func ExtractHardwareVendor(block string) (hv HardwareVendor, ok bool) {
	m := hardwareVendorPattern.FindStringSubmatch(block)
	if m == nil {
		return HardwareVendor{}, false
	}
	return HardwareVendor{MAC: m[1], Vendor: m[2]}, true
}

// ExtractField returns the first capture for the named field in block,
// or nil. Unknown field names always yield nil.
func ExtractField(field, block string) *string {
	switch field {
	case FieldStarts, FieldEnds, FieldTstp, FieldCltt:
		return firstCapture(timestampPatterns[field], block)
	case FieldIP:
		return firstCapture(ipPattern, block)
	case FieldMAC, "hardware ethernet":
		if hv, ok := ExtractHardwareVendor(block); ok {
			return &hv.MAC
		}
		return nil
	case FieldVendorClassIdentifier, "vendor", "vendor-class-identifier",
		"vendor class identifier", "set vendor class identifier":
		if hv, ok := ExtractHardwareVendor(block); ok {
			return &hv.Vendor
		}
		return nil
	default:
		return nil
	}
}

func firstCapture(re *regexp.Regexp, s string) *string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return &m[1]
}
