// README: Postcode fare tiers.
package pricing

import "github.com/shopspring/decimal"

// Fixed fares per destination tier. The airport rate wins over everything,
// including an otherwise-invalid second leg.
var (
	AirportFare    = decimal.RequireFromString("60.00")
	InterstateFare = decimal.RequireFromString("500.00")
	RegionalFare   = decimal.RequireFromString("220.00")
	MetroFare      = decimal.RequireFromString("40.00")
)

const (
	airportPostcode = 3045
	stateMin        = 3000
	stateMax        = 3999
	metroMax        = 3299
)
