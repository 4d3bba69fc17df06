package core

import "sort"

type overrideKey struct {
	po   string
	part string
}

// MergeOverrides folds standalone override entries onto PO lines, matching on
// (PO number, part number). An entry replaces each override column
// independently; lines without a matching entry keep whatever they carry.
func MergeOverrides(lines []PurchaseOrderLine, entries []OverrideEntry) []PurchaseOrderLine {
	if len(entries) == 0 {
		return lines
	}
	index := make(map[overrideKey]OverrideEntry, len(entries))
	for _, e := range entries {
		index[overrideKey{e.PONumber, e.PartNumber}] = e
	}

	merged := make([]PurchaseOrderLine, len(lines))
	for i, line := range lines {
		if e, ok := index[overrideKey{line.PONumber, line.PartNumber}]; ok {
			if e.Override1 != nil {
				line.Override1 = e.Override1
			}
			if e.Override2 != nil {
				line.Override2 = e.Override2
			}
		}
		merged[i] = line
	}
	return merged
}

// ApplyOverrides substitutes manual category corrections into allocation
// records. Only records carrying a PO number join; for each (PO number, part
// number) pair the first PO line with a non-empty override wins. Each
// category is replaced independently, and a record with no matching override
// keeps its derived categories. Returns a new slice; the input records are
// not touched.
func ApplyOverrides(records []AllocationRecord, lines []PurchaseOrderLine) []AllocationRecord {
	cat1 := make(map[overrideKey]string)
	cat2 := make(map[overrideKey]string)
	for _, line := range lines {
		k := overrideKey{line.PONumber, line.PartNumber}
		if line.Override1 != nil && *line.Override1 != "" {
			if _, ok := cat1[k]; !ok {
				cat1[k] = *line.Override1
			}
		}
		if line.Override2 != nil && *line.Override2 != "" {
			if _, ok := cat2[k]; !ok {
				cat2[k] = *line.Override2
			}
		}
	}

	out := make([]AllocationRecord, len(records))
	for i, rec := range records {
		if rec.PONumber != nil {
			k := overrideKey{*rec.PONumber, rec.PartNumber}
			if v, ok := cat1[k]; ok {
				rec.Category1 = strPtr(v)
			}
			if v, ok := cat2[k]; ok {
				rec.Category2 = strPtr(v)
			}
		}
		out[i] = rec
	}
	return out
}

// DuplicateOverrideGroup flags PO lines sharing a part number whose manual
// override values disagree with each other.
type DuplicateOverrideGroup struct {
	PartNumber string
	Lines      []PurchaseOrderLine
}

// FindDuplicateOverrides reports part numbers bought on several PO lines that
// carry conflicting Override 1 or Override 2 values. Conflicting overrides
// make the applied category depend on line order, so they want fixing before
// a run.
func FindDuplicateOverrides(lines []PurchaseOrderLine) []DuplicateOverrideGroup {
	byPart := make(map[string][]PurchaseOrderLine)
	for _, line := range lines {
		if line.PartNumber == "" {
			continue
		}
		byPart[line.PartNumber] = append(byPart[line.PartNumber], line)
	}

	parts := make([]string, 0, len(byPart))
	for pn := range byPart {
		parts = append(parts, pn)
	}
	sort.Strings(parts)

	var groups []DuplicateOverrideGroup
	for _, pn := range parts {
		group := byPart[pn]
		if len(group) < 2 {
			continue
		}
		if overridesDisagree(group) {
			groups = append(groups, DuplicateOverrideGroup{PartNumber: pn, Lines: group})
		}
	}
	return groups
}

func overridesDisagree(lines []PurchaseOrderLine) bool {
	distinct := func(get func(PurchaseOrderLine) *string) bool {
		seen := make(map[string]bool)
		for _, l := range lines {
			v := ""
			if s := get(l); s != nil {
				v = *s
			}
			seen[v] = true
		}
		return len(seen) > 1
	}
	return distinct(func(l PurchaseOrderLine) *string { return l.Override1 }) ||
		distinct(func(l PurchaseOrderLine) *string { return l.Override2 })
}
