package core

import (
	"regexp"
	"strings"
)

// machinedPartPattern matches the four-segment machined part code with an
// optional single-letter revision suffix (GF12.414.02 or GF12.414.02.B).
var machinedPartPattern = regexp.MustCompile(`^GF12\.\d{3}\.\d{2}(\.[A-Z])?$`)

// NormalizePartNumber canonicalizes a raw item string: everything from the
// first parenthesis on is dropped, embedded tab characters are removed, and
// surrounding whitespace is trimmed. Total over any input; an empty result
// means the source carried no usable part number.
func NormalizePartNumber(raw string) string {
	pn, _, _ := strings.Cut(raw, "(")
	pn = strings.ReplaceAll(pn, "\t", "")
	return strings.TrimSpace(pn)
}

// IsMachinedPart reports whether pn is a machined part code, with or without
// a revision suffix.
func IsMachinedPart(pn string) bool {
	return machinedPartPattern.MatchString(pn)
}

// ChopRevision returns the comparison key for a part number: a machined
// code's trailing revision letter is stripped, anything else passes through
// unchanged. The revision stays on the original record; only the key folds.
func ChopRevision(pn string) string {
	if m := machinedPartPattern.FindStringSubmatch(pn); m != nil && m[1] != "" {
		return pn[:len(pn)-2]
	}
	return pn
}

// ClassifyPart decides how a part number is processed. Freight and expediting
// charge lines never attribute to a physical location; machined parts fold
// revisions before matching.
func ClassifyPart(pn string) PartClass {
	if IsMachinedPart(pn) {
		return ClassMachined
	}
	lower := strings.ToLower(pn)
	if strings.Contains(lower, "freight") || strings.Contains(lower, "expedit") {
		return ClassFreight
	}
	return ClassPurchased
}

// LookupPartLines returns the PO lines for a part number. Verbatim mode
// matches exactly; otherwise any line whose part number contains the query,
// case-insensitively, matches.
func LookupPartLines(lines []PurchaseOrderLine, query string, verbatim bool) []PurchaseOrderLine {
	var out []PurchaseOrderLine
	for _, line := range lines {
		if verbatim {
			if line.PartNumber == query {
				out = append(out, line)
			}
		} else if strings.Contains(strings.ToLower(line.PartNumber), strings.ToLower(query)) {
			out = append(out, line)
		}
	}
	return out
}
