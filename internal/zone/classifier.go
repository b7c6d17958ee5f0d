package zone

import "regexp"

// LineKind is the outcome of classifying one zone file line
type LineKind int

const (
	// LineIgnored covers everything that is not a one-line A or CNAME record
	LineIgnored LineKind = iota
	// LineSkipped is an empty line, a comment or a $ directive
	LineSkipped
	LineA
	LineCNAME
)

func (k LineKind) String() string {
	switch k {
	case LineSkipped:
		return "skipped"
	case LineA:
		return "A"
	case LineCNAME:
		return "CNAME"
	default:
		return "ignored"
	}
}

var (
	aPattern     = regexp.MustCompile(`^\s*(\S+)\s+IN\s+A\s+(\S+)\s*$`)
	cnamePattern = regexp.MustCompile(`^\s*(\S+)\s+IN\s+CNAME\s+(\S+)\s*$`)
)

// Classification is a classified line with its captured name and value.
// Name and Value are empty unless Kind is LineA or LineCNAME.
type Classification struct {
	Kind  LineKind
	Name  string
	Value string
}

// ClassifyLine decides what a single zone file line contributes.
// Only the first character is checked for comments and directives.
func ClassifyLine(line string) Classification {
	if line == "" || line[0] == ';' || line[0] == '$' {
		return Classification{Kind: LineSkipped}
	}

	if m := aPattern.FindStringSubmatch(line); m != nil {
		return Classification{Kind: LineA, Name: m[1], Value: m[2]}
	}
	if m := cnamePattern.FindStringSubmatch(line); m != nil {
		return Classification{Kind: LineCNAME, Name: m[1], Value: m[2]}
	}

	return Classification{Kind: LineIgnored}
}
