package dhcp

import "strings"

// leaseToken starts every lease declaration in dhcpd.leases
const leaseToken = "lease "

// SplitBlocks cuts raw lease file content into one substring per lease.
// Text before the first token is the file preamble and is dropped. Each
// block runs up to the next token; well-formedness is not checked.
func SplitBlocks(content string) []string {
	parts := strings.Split(content, leaseToken)
	if len(parts) < 2 {
		return []string{}
	}
	return parts[1:]
}
