package contracts

import "errors"

var (
	// ErrUnknownStrategy is returned by direct registry lookup for an
	// unregistered strategy name. The batch service filters unknown names
	// silently instead of returning this.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInsufficientHistory is returned by a strategy whose minimum-bar
	// requirement is not met by the supplied history.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrDataUnavailable is returned by price providers when a sector is
	// unknown or has no data in the requested range.
	ErrDataUnavailable = errors.New("price data unavailable")
)
