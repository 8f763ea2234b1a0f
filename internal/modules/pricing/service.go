// README: Pricing service computes the fixed fare for a postcode pair.
package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Service resolves fares from postcode tiers. It is pure: no store, no
// side effects, and the fare for a pair of postcodes never changes.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Fare returns the fixed fare for a trip between two postcodes. Rules are
// evaluated in order and the first match wins; the ranges overlap, so the
// order matters. Callers validate postcode shape (exactly 4 digits) before
// calling; anything non-numeric lands in the interstate tier here.
func (s *Service) Fare(pickup, destination string) decimal.Decimal {
	p := parsePostcode(pickup)
	d := parsePostcode(destination)

	switch {
	case p == airportPostcode || d == airportPostcode:
		return AirportFare
	case outsideState(p) || outsideState(d):
		return InterstateFare
	case p > metroMax || d > metroMax:
		return RegionalFare
	default:
		return MetroFare
	}
}

func parsePostcode(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

func outsideState(postcode int) bool {
	return postcode < stateMin || postcode > stateMax
}
