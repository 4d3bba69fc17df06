package core

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// LocationParseError reports a malformed token in a location spec string.
// Callers recover by treating the whole spec as "no location information",
// which routes the part's purchases to the unattributed policy.
type LocationParseError struct {
	Token  string
	Reason string
}

func (e *LocationParseError) Error() string {
	return fmt.Sprintf("bad location token %q: %s", e.Token, e.Reason)
}

// ParseLocationSpec parses a comma-separated "location x quantity" list such
// as "1x2, 3x5" into ordered demands. Whitespace is insignificant; empty
// tokens from doubled or surrounding commas are dropped. Each token splits on
// its last 'x', so location codes containing 'x' survive intact. Demand order
// follows input order and is the allocation priority.
func ParseLocationSpec(spec string) ([]LocationDemand, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, spec)

	var demands []LocationDemand
	for _, token := range strings.Split(cleaned, ",") {
		if token == "" {
			continue
		}
		i := strings.LastIndex(token, "x")
		if i < 0 {
			return nil, &LocationParseError{Token: token, Reason: "no 'x' separator"}
		}
		location, rawQty := token[:i], token[i+1:]
		if location == "" {
			return nil, &LocationParseError{Token: token, Reason: "empty location"}
		}
		qty, err := decimal.NewFromString(rawQty)
		if err != nil {
			return nil, &LocationParseError{Token: token, Reason: fmt.Sprintf("quantity %q is not numeric", rawQty)}
		}
		if qty.IsNegative() {
			return nil, &LocationParseError{Token: token, Reason: "negative quantity"}
		}
		demands = append(demands, LocationDemand{Location: location, Quantity: qty.Round(2)})
	}
	return demands, nil
}
