package core

import "strings"

// StationMapping is one prefix rule from the station table.
type StationMapping struct {
	Prefix  string
	Station string
}

// stationTable is evaluated top to bottom; the first matching prefix wins.
// The order is load-bearing: zero-padded control codes sit above their
// single-digit frame counterparts.
var stationTable = []StationMapping{
	{"001", "Main Controls"},
	{"1", "Main Frame"},
	{"2", "Unwind/Punch Station"},
	{"002", "Unwind/Punch Station"},
	{"3", "Spout Station"},
	{"003", "Spout Station"},
	{"007", "Spout Station"},
	{"4", "Side Seal Station"},
	{"004", "Side Seal Station"},
	{"5", "Cross Seal Station"},
	{"005", "Cross Seal Station"},
	{"6", "Cap Station"},
	{"006", "Cap Station"},
	{"008", "Cap Station"},
	{"8", "Delivery/Cutoff Station"},
	{"7", "Delivery/Cutoff Station"},
	{"009", "Delivery/Cutoff Station"},
}

// StationForLocation maps a raw location code to its production station.
// A nil location has no station; a code matching no prefix has none either.
func StationForLocation(location *string) *string {
	if location == nil {
		return nil
	}
	for _, rule := range stationTable {
		if strings.HasPrefix(*location, rule.Prefix) {
			return strPtr(rule.Station)
		}
	}
	return nil
}

// StationMappings returns the prefix table in evaluation order.
func StationMappings() []StationMapping {
	out := make([]StationMapping, len(stationTable))
	copy(out, stationTable)
	return out
}
